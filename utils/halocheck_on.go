//go:build halocheck

package utils

const haloCheck = true
