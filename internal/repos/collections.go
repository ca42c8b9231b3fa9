package repos

import "minimart/internal/docstore"

const (
	ColUsers         = "users"
	ColProducts      = "products"
	ColCarts         = "carts"
	ColOrders        = "orders"
	ColNotifications = "notifications"
	ColSessions      = "sessions"
)

// ReviewsCollection names the review subcollection of a product.
func ReviewsCollection(productID string) string {
	return ColProducts + "/" + productID + "/reviews"
}

func decodeAll[T any](docs []docstore.Doc) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := d.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
