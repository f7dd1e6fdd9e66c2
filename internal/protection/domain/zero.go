package domain

// Zero overwrites key bytes in place once they are no longer needed.
func Zero(b []byte) {
	clear(b)
}
