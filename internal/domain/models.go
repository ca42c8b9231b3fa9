package domain

// Order statuses. Cancellation is only offered while an order is still
// pending or in process; every other status is terminal for the cancel path.
const (
	StatusPending   = "pending"
	StatusInProcess = "in process"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

// Cancellable reports whether the cancel action may be offered for a status.
func Cancellable(status string) bool {
	return status == StatusPending || status == StatusInProcess
}

type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

type CartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the per-user persisted copy of the in-memory cart. The document id
// in the carts collection is the owner's user id.
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

type Order struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Items         []CartItem `json:"items"`
	Total         float64    `json:"total"`
	TotalQuantity int        `json:"total_quantity"`
	Status        string     `json:"status"`
	CreatedAt     string     `json:"created_at,omitempty"`
}

type Notification struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Message   string   `json:"message"`
	Images    []string `json:"images,omitempty"`
	Read      bool     `json:"read"`
	CreatedAt string   `json:"created_at,omitempty"`
}

type Review struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	UserID     string `json:"user_id"`
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at,omitempty"`
}
