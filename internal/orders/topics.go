package orders

const (
	TopicOrderCreated  = "order.created"
	TopicStatusChanged = "order.status"
)

// Partition key = order_id, supaya event satu pesanan tetap berurutan.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
