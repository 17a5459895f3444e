package orders

const TopicOrderCreated = "pedidos.created"

// Partition key = order id, so every event of one order keeps its order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
