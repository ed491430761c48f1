package session

import (
	"regexp"
	"strings"
)

// passwordSpecials are the special characters the backend accepts.
const passwordSpecials = "@$!%*?&"

// validPassword checks the signup password policy: at least 8 characters
// drawn from letters, digits, and passwordSpecials, with at least one
// lowercase, one uppercase, one digit, and one special character.
func validPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// errWeakPassword is the message surfaced for policy violations.
const errWeakPassword = "Password must be at least 8 characters and include uppercase, lowercase, a digit, and a special character"

var pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// validPincode checks the 6-digit pincode invariant.
func validPincode(p string) bool {
	return pincodeRe.MatchString(p)
}

// errBadPincode is the message surfaced for malformed pincodes.
const errBadPincode = "Pincode must be a 6-digit number"
