package usecase

import (
	"context"
	"time"

	"github.com/allisson/fieldguard/internal/metrics"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// protectionUseCaseWithMetrics decorates ProtectionUseCase with metrics instrumentation.
type protectionUseCaseWithMetrics struct {
	next    ProtectionUseCase
	metrics metrics.BusinessMetrics
}

// NewProtectionUseCaseWithMetrics wraps a ProtectionUseCase with metrics recording.
func NewProtectionUseCaseWithMetrics(
	useCase ProtectionUseCase,
	m metrics.BusinessMetrics,
) ProtectionUseCase {
	return &protectionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Protect records metrics for protect operations.
func (p *protectionUseCaseWithMetrics) Protect(
	ctx context.Context,
	plaintext string,
	tier protectionDomain.Tier,
) (protectionDomain.ProtectedValue, error) {
	start := time.Now()
	value, err := p.next.Protect(ctx, plaintext, tier)
	p.record(ctx, operationName("protect", tier), start, err)
	return value, err
}

// Unprotect records metrics for unprotect operations.
func (p *protectionUseCaseWithMetrics) Unprotect(
	ctx context.Context,
	value protectionDomain.ProtectedValue,
	tier protectionDomain.Tier,
) (string, error) {
	start := time.Now()
	plaintext, err := p.next.Unprotect(ctx, value, tier)
	p.record(ctx, operationName("unprotect", tier), start, err)
	return plaintext, err
}

// Verify records metrics for verify operations. A mismatch is a successful operation.
func (p *protectionUseCaseWithMetrics) Verify(
	ctx context.Context,
	plaintext string,
	stored protectionDomain.ProtectedValue,
	tier protectionDomain.Tier,
) (bool, error) {
	start := time.Now()
	ok, err := p.next.Verify(ctx, plaintext, stored, tier)
	p.record(ctx, operationName("verify", tier), start, err)
	return ok, err
}

// Fingerprint records metrics for fingerprint operations.
func (p *protectionUseCaseWithMetrics) Fingerprint(
	ctx context.Context,
	plaintext string,
	kind protectionDomain.FingerprintKind,
) (protectionDomain.Fingerprint, error) {
	start := time.Now()
	fp, err := p.next.Fingerprint(ctx, plaintext, kind)
	p.record(ctx, "fingerprint", start, err)
	return fp, err
}

func (p *protectionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "protection", operation, status)
	p.metrics.RecordDuration(ctx, "protection", operation, time.Since(start), status)
}

// operationName keeps label cardinality bounded: unknown tiers collapse to the bare operation.
func operationName(operation string, tier protectionDomain.Tier) string {
	if tier.Validate() != nil {
		return operation
	}
	return operation + "_" + tier.String()
}
