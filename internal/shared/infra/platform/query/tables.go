package query

// Reserved request parameters. They drive search, sorting and pagination and
// never become filter fields.
const (
	KeyKeyword = "keyword"
	KeyPage    = "page"
	KeyLimit   = "limit"
	KeySort    = "sort"
	KeyFields  = "fields"
)

var reservedKeys = map[string]struct{}{
	KeyKeyword: {},
	KeyPage:    {},
	KeyLimit:   {},
	KeySort:    {},
	KeyFields:  {},
}

// operatorSuffixes maps the bracket suffix of a filter parameter
// (price[gte]=10) to the store comparison operator.
var operatorSuffixes = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
}

// IsReserved reports whether key is a control parameter.
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// OperatorFor returns the store operator for a bracket suffix.
func OperatorFor(suffix string) (string, bool) {
	op, ok := operatorSuffixes[suffix]
	return op, ok
}
