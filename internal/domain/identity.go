package domain

type IdentityKind string

const (
	IdentityPhone IdentityKind = "phone"
	IdentityEmail IdentityKind = "email"

	phoneDigits       = 11
	phoneRegionPrefix = "+86"
)

// Identity is an account identifier classified once, before any request is made.
type Identity struct {
	Raw        string
	Kind       IdentityKind
	Normalized string
}

func ClassifyIdentity(raw string) Identity {
	if isPhoneNumber(raw) {
		return Identity{Raw: raw, Kind: IdentityPhone, Normalized: phoneRegionPrefix + raw}
	}

	return Identity{Raw: raw, Kind: IdentityEmail, Normalized: raw}
}

func (i Identity) IsPhone() bool {
	return i.Kind == IdentityPhone
}

// ThirdName is the login provider name the token endpoint expects for this kind.
func (i Identity) ThirdName() string {
	if i.IsPhone() {
		return "huami_phone"
	}
	return "email"
}

func isPhoneNumber(raw string) bool {
	if len(raw) != phoneDigits {
		return false
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}

	return true
}

// MaskIdentifier keeps the first three bytes and everything from index 7 onward.
func MaskIdentifier(raw string) string {
	head := raw
	if len(head) > 3 {
		head = head[:3]
	}

	tail := ""
	if len(raw) > 7 {
		tail = raw[7:]
	}

	return head + "****" + tail
}
