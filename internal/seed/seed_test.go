package seed

import (
	"testing"
	"time"

	"warehouse_backend/internal/models"
)

func TestSnapshotIsConsistent(t *testing.T) {
	snap := Snapshot("hash", time.Now())

	if len(snap.Categories) != 4 || len(snap.Locations) != 3 || len(snap.Items) != 3 || len(snap.Sales) != 1 || len(snap.Tasks) != 2 || len(snap.TeamMembers) != 3 {
		t.Fatalf("unexpected sizes: %d categories, %d locations, %d items, %d sales, %d tasks, %d members",
			len(snap.Categories), len(snap.Locations), len(snap.Items), len(snap.Sales), len(snap.Tasks), len(snap.TeamMembers))
	}

	categories := map[string]bool{}
	for _, c := range snap.Categories {
		categories[c.ID] = true
	}
	locations := map[string]models.Location{}
	for _, l := range snap.Locations {
		locations[l.ID] = l
	}
	internalIDs := map[string]bool{}
	for _, item := range snap.Items {
		if !categories[*item.CategoryID] {
			t.Errorf("%s references an unknown category", item.Name)
		}
		if _, ok := locations[*item.LocationID]; !ok {
			t.Errorf("%s references an unknown location", item.Name)
		}
		if internalIDs[item.InternalID] {
			t.Errorf("duplicate internal id %s", item.InternalID)
		}
		internalIDs[item.InternalID] = true
		if item.Status != models.StockStatusFor(item.Quantity, item.MinStockLevel) {
			t.Errorf("%s status %s does not follow its quantity", item.Name, item.Status)
		}
	}
	for _, l := range snap.Locations {
		if l.ParentID == nil {
			continue
		}
		if parent := locations[*l.ParentID]; parent.Level >= l.Level {
			t.Errorf("%s sits under %s at level %d", l.Name, parent.Name, parent.Level)
		}
	}

	if snap.TeamMembers[0].Role != models.RoleAdmin || snap.TeamMembers[0].PasswordHash != "hash" {
		t.Errorf("admin = %+v", snap.TeamMembers[0])
	}
	if snap.TeamMembers[1].PasswordHash != "" {
		t.Error("only the admin should be able to log in")
	}
	if snap.Items[1].Status != models.ItemStatusLowStock {
		t.Errorf("office chair status = %s, want low-stock", snap.Items[1].Status)
	}
}
