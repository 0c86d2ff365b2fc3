package embedding

// Dimension is the length of every produced vector. Each vocabulary term owns
// the dimension at its index, so vectors from different calls are directly
// comparable within a store.
const Dimension = 25

// Vocabulary is the immutable ordered list of business terms that define the
// embedding dimensions. It is identical across all tenants and all calls;
// changing it invalidates every stored vector.
var Vocabulary = [Dimension]string{
	"category", "description", "price", "availability", "imageurl",
	"name", "brand", "rating", "reviews", "specifications",
	"features", "details", "information", "product", "business",
	"data", "analysis", "insights", "metrics", "performance",
	"sales", "revenue", "customers", "market", "trends",
}
