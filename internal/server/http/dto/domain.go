package dto

import "time"

// DomainResponse describes a registered domain as exposed via the API.
type DomainResponse struct {
	DomainName        string    `json:"domain_name"`
	Status            string    `json:"status"`
	NameserverMode    string    `json:"nameserver_mode"`
	Nameservers       []string  `json:"nameservers"`
	RegistrarDomainID string    `json:"registrar_domain_id"`
	CloudflareZoneID  string    `json:"cloudflare_zone_id,omitempty"`
	ExpiryDate        time.Time `json:"expiry_date"`
}
