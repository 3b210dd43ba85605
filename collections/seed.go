package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"go.uber.org/zap"

	"ptcmobile/services"
)

// Seed stores profile as the issuing company. It is safe to call on every
// startup because it returns early if a profile record already exists, so
// edits made through the settings page are never overwritten.
func Seed(app *pocketbase.PocketBase, profile services.CompanyProfile) error {
	col, err := app.FindCollectionByNameOrId(services.CompanyProfilesCollection)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", services.CompanyProfilesCollection, err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query company profiles: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	zap.L().Info("seed: inserting company profile", zap.String("name", profile.Name))

	if err := services.SaveCompanyProfile(app, profile); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
