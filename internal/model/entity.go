package model

// EntityType identifies a kind of globally-defined catalog entity. The enum
// is open: the engine treats unknown values as valid so new entity kinds can
// be governed without a code change, but the REST layer validates against the
// known set.
type EntityType string

const (
	EntityTypeCategory     EntityType = "category"
	EntityTypeSubcategory  EntityType = "subcategory"
	EntityTypeBrand        EntityType = "brand"
	EntityTypeProduct      EntityType = "product"
	EntityTypeVariableType EntityType = "variableType"
)

// KnownEntityTypes lists the entity kinds shipped with the catalog.
var KnownEntityTypes = []EntityType{
	EntityTypeCategory,
	EntityTypeSubcategory,
	EntityTypeBrand,
	EntityTypeProduct,
	EntityTypeVariableType,
}

func (t EntityType) Known() bool {
	for _, k := range KnownEntityTypes {
		if t == k {
			return true
		}
	}
	return false
}

// CatalogRef identifies one catalog entity. The engine never dereferences it;
// entity schemas live in the catalog stores.
type CatalogRef struct {
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
}

// CountryGlobal is the pseudo country code for resources visible to every
// tenant. Globally scoped resources are readable by any principal.
const CountryGlobal = "GLOBAL"
