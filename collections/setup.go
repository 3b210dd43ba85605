package collections

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ptcmobile/services"
)

// Setup programmatically creates/ensures the company_profiles collection
// exists. Invoices themselves are never stored.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, services.CompanyProfilesCollection, func(c *core.Collection) {
		for _, name := range services.CompanyProfileFieldNames() {
			c.Fields.Add(&core.TextField{Name: name, Required: name == "name"})
		}
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		zap.L().Debug("collections: already exists", zap.String("collection", name))
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		zap.L().Fatal("collections: create failed", zap.String("collection", name), zap.Error(err))
	}

	zap.L().Info("collections: created", zap.String("collection", name), zap.String("id", collection.Id))
	return collection
}
