package returns

import "strings"

// Product is the subset of catalog attributes the return flow reads.
type Product struct {
	ID     ID      `json:"id"`
	Name   string  `json:"name"`
	NameEn string  `json:"nameEn,omitempty"`
	Price  float64 `json:"price"`
}

// Catalog indexes products by identifier. It is built from an already
// fetched product list and never mutated afterwards.
type Catalog map[ID]Product

// NewCatalog indexes products. Later entries win on duplicate ids.
func NewCatalog(products []Product) Catalog {
	catalog := make(Catalog, len(products))
	for _, p := range products {
		if p.ID.IsZero() {
			continue
		}
		catalog[p.ID] = p
	}
	return catalog
}

// Lookup returns the product with the given id.
func (c Catalog) Lookup(id ID) (Product, bool) {
	p, ok := c[id]
	return p, ok
}

// DisplayName returns the localized product name, falling back to the
// default name when no translation exists.
func (c Catalog) DisplayName(id ID, lang string) (string, bool) {
	p, ok := c[id]
	if !ok {
		return "", false
	}
	if strings.EqualFold(lang, "en") && strings.TrimSpace(p.NameEn) != "" {
		return p.NameEn, true
	}
	return p.Name, true
}
