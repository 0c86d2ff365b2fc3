package badger

// Key prefixes for collection metadata and items
const (
	collectionPrefix = "vcol"
	itemPrefix       = "vitm"
)

// makeCollectionKey generates the metadata key for a collection.
func makeCollectionKey(name string) []byte {
	return []byte(collectionPrefix + ":" + name)
}

// makeItemPrefix generates the key prefix shared by all items of a
// collection. The trailing separator keeps prefixes of distinct collection
// names from overlapping.
func makeItemPrefix(name string) []byte {
	return []byte(itemPrefix + ":" + name + ":")
}

// makeItemKey generates the key for a single item.
func makeItemKey(name, id string) []byte {
	return append(makeItemPrefix(name), []byte(id)...)
}
