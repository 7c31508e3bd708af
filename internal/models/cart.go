package models

// CartLine is a product reserved in a cart. Product attributes are frozen at
// the time the product was first added; Quantity is owned by the cart.
type CartLine struct {
	ProductID  string   `json:"id"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	UnitPrice  float64  `json:"price"`
	PowerScore float64  `json:"power_score"`
	Quantity   int      `json:"quantity"`
	Subtotal   float64  `json:"subtotal"`
}

// BottleneckReport is the outcome of the CPU/GPU balance heuristic.
type BottleneckReport struct {
	CPU          *CartLine `json:"cpu"`
	GPU          *CartLine `json:"gpu"`
	IsBottleneck bool      `json:"is_bottleneck"`
	Message      string    `json:"message"`
}
