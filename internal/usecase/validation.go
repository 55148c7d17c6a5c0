package usecase

import (
	"regexp"
	"strings"
)

var hostnameLabel = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidateHostname checks hostname syntax label by label.
func ValidateHostname(hostname string) bool {
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	if hostname == "" || len(hostname) > 253 {
		return false
	}

	labels := strings.Split(hostname, ".")
	for _, label := range labels {
		if !hostnameLabel.MatchString(label) {
			return false
		}
	}
	return true
}

// ValidateNameserverSet checks a custom nameserver list: 2 to 4 entries,
// each a syntactically valid hostname.
func ValidateNameserverSet(nameservers []string) bool {
	if len(nameservers) < 2 || len(nameservers) > 4 {
		return false
	}
	for _, ns := range nameservers {
		if !ValidateHostname(ns) {
			return false
		}
	}
	return true
}

// SplitDomain separates a fully qualified domain name into its first label
// and the remaining extension, so "example.com.br" yields ("example",
// "com.br"). Reports false for names that are not registrable.
func SplitDomain(domainName string) (root, tld string, ok bool) {
	domainName = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domainName), "."))
	if !ValidateHostname(domainName) {
		return "", "", false
	}

	idx := strings.Index(domainName, ".")
	if idx <= 0 || idx == len(domainName)-1 {
		return "", "", false
	}
	return domainName[:idx], domainName[idx+1:], true
}
