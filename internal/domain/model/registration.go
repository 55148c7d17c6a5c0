package model

// FailureReason classifies why a registration pipeline ended in failure.
type FailureReason string

const (
	FailureOrderInvalid          FailureReason = "ORDER_INVALID"
	FailureTldNotAllowed         FailureReason = "TLD_NOT_ALLOWED"
	FailureDNSZone               FailureReason = "DNS_ZONE_FAILURE"
	FailureContact               FailureReason = "CONTACT_FAILURE"
	FailureRegistration          FailureReason = "REGISTRATION_FAILURE"
	FailurePersistence           FailureReason = "PERSISTENCE_FAILURE"
	FailureUnreconciledDuplicate FailureReason = "UNRECONCILED_DUPLICATE"
)

// RegistrationResult is the outcome of one registration pipeline run.
type RegistrationResult struct {
	Success           bool
	DomainName        string
	Nameservers       []string
	RegistrarDomainID string
	CloudflareZoneID  string
	Reason            FailureReason
	Detail            string
}

// StepKind identifies which external artifact a pipeline step created.
type StepKind string

const (
	StepCloudflareZone StepKind = "cloudflare_zone"
	StepContactHandle  StepKind = "contact_handle"
	StepDomain         StepKind = "domain"
	StepDNSRecord      StepKind = "dns_record"
)

// AttemptStep is one entry of the in-memory rollback ledger. External
// artifacts are never deleted on failure; the ledger exists so operators can
// reconcile what was left behind.
type AttemptStep struct {
	Kind       StepKind
	ArtifactID string
}
