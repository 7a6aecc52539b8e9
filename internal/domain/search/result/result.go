package result

// Result is a single ranked search hit.
type Result struct {
	id         string
	name       string
	typ        string
	score      float64
	realm      string
	attributes map[string]string
}

// New creates a search result. attributes holds the raw hit fields and may be nil.
func New(realm, id, name, typ string, score float64, attributes map[string]string) Result {
	return Result{
		id: id, name: name, typ: typ, score: score,
		realm: realm, attributes: attributes,
	}
}

// ID returns the document identifier, unique within its realm.
func (r *Result) ID() string { return r.id }

// Name returns the display name.
func (r *Result) Name() string { return r.name }

// Type returns the document type tag.
func (r *Result) Type() string { return r.typ }

// Score returns the relevance score. Higher is more relevant.
func (r *Result) Score() float64 { return r.score }

// Realm returns the store the hit came from.
func (r *Result) Realm() string { return r.realm }

// Attribute returns a raw hit field, empty if absent.
func (r *Result) Attribute(name string) string { return r.attributes[name] }

// Key identifies a hit for deduplication across query variants and realms.
type Key struct {
	Realm string
	ID    string
}

// Key returns the deduplication identity of r.
func (r *Result) Key() Key { return Key{Realm: r.realm, ID: r.id} }
