package repos

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"minimart/internal/docstore"
	"minimart/internal/domain"
)

// Seed inserts demo users and products when their collections are empty.
// Safe to run on every start.
func Seed(ctx context.Context, st docstore.Store) error {
	if err := seedUsers(ctx, st); err != nil {
		return err
	}
	return seedProducts(ctx, st)
}

func seedUsers(ctx context.Context, st docstore.Store) error {
	existing, err := st.Query(ctx, ColUsers, docstore.Where{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	mk := func(id, email, name, role, raw string) domain.User {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return domain.User{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}
	users := []domain.User{
		mk("u-alice", "alice@minimart.test", "Alice", domain.RoleUser, "Passw0rd!"),
		mk("u-bob", "bob@minimart.test", "Bob", domain.RoleUser, "Passw0rd!"),
		mk("u-admin", "admin@minimart.test", "Admin", domain.RoleAdmin, "Passw0rd!"),
	}
	for _, u := range users {
		if err := st.Set(ctx, ColUsers, u.ID, u); err != nil {
			return err
		}
	}
	return nil
}

func seedProducts(ctx context.Context, st docstore.Store) error {
	existing, err := st.Query(ctx, ColProducts, docstore.Where{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	products := []domain.Product{
		{ID: "p-kettle", Title: "Stovetop Kettle", Description: "Enamel kettle, 1.5 L",
			Price: 34.50, Images: []string{"products/p-kettle/main.jpg"}},
		{ID: "p-grinder", Title: "Hand Coffee Grinder", Description: "Ceramic burr grinder",
			Price: 59.00, Images: []string{"products/p-grinder/main.jpg"}},
		{ID: "p-mug", Title: "Ceramic Mug", Description: "350 ml stoneware mug",
			Price: 12.99, Images: []string{"products/p-mug/main.jpg"}},
	}
	for _, p := range products {
		if err := st.Set(ctx, ColProducts, p.ID, p); err != nil {
			return err
		}
	}
	return nil
}
