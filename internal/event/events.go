package event

type Type string

const (
	ItemListedEvent        Type = "ItemListedEvent"
	ItemCanceledEvent      Type = "ItemCanceledEvent"
	ListingUpdatedEvent    Type = "ListingUpdatedEvent"
	ItemBoughtEvent        Type = "ItemBoughtEvent"
	ProceedsWithdrawnEvent Type = "ProceedsWithdrawnEvent"
)
