package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetRentalQueues возвращает очереди событий проката.
func GetRentalQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "rental.events", RoutingKey: "rental.created"},
		{QueueName: "rental.events", RoutingKey: "rental.returned"},
	}
}
