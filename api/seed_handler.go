package api

import (
	"fmt"
	"net/http"

	"github.com/xraph/forge"
)

func (a *API) seedData(ctx forge.Context) error {
	if err := a.seeder.Seed(ctx.Context()); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	return ctx.JSON(http.StatusOK, SeedResponse{Message: "Data seeded successfully"})
}
