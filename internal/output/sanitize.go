package output

import "github.com/microcosm-cc/bluemonday"

// Sanitizer filters host markup before it enters the document. Interactor
// and channel data attributes and callable references survive; scripts and
// event handler attributes do not.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns the policy used for every host fragment.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowDataAttributes()
	p.AllowAttrs("id", "class", "objid").Globally()
	return &Sanitizer{policy: p}
}

// Sanitize returns markup with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(markup string) string {
	return s.policy.Sanitize(markup)
}
