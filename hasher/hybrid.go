package hasher

// HybridDomain is a domain value tagged with the representation it lives in.
// Layers whose beta height is zero use the alpha representation; the beta
// arm exists for layers above the beta height in the layered construction.
type HybridDomain struct {
	beta bool
	val  Domain
}

// Alpha wraps v as an alpha-domain value.
func Alpha(v Domain) HybridDomain { return HybridDomain{val: v} }

// Beta wraps v as a beta-domain value.
func Beta(v Domain) HybridDomain { return HybridDomain{beta: true, val: v} }

// IsBeta reports whether the value lives in the beta representation.
func (h HybridDomain) IsBeta() bool { return h.beta }

// Value returns the underlying domain element.
func (h HybridDomain) Value() Domain { return h.val }
