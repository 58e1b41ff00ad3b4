package validators

import (
	"net"
	"strings"
)

// EmailDomain extrai o domínio em minúsculas; ok é falso se não houver.
func EmailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:])), true
}

// IsEmailDomainValid aceita domínios com MX ou, na falta dele, A/AAAA.
func IsEmailDomainValid(email string) bool {
	domain, ok := EmailDomain(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
