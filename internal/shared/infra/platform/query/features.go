package query

import (
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultSearchField is the text field matched by the keyword search.
const DefaultSearchField = "name"

// bracketKey splits "price[gte]" into "price" and "gte".
var bracketKey = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+)\]$`)

// Features wraps a base query and the raw parameters of one list request.
//
// The stages are meant to be applied as Search -> Filter -> Sort -> Pagination.
// Search and Filter only AND predicates into the query, so their relative
// order does not matter. Pagination must come last: skip and limit are
// relative to the searched and filtered set. Calling Search or Filter after
// Pagination is a caller error and is not corrected here.
type Features struct {
	query       Descriptor
	params      url.Values
	searchField string
	schema      Schema
	page        OffsetPagination
}

// Option configures a Features builder.
type Option func(*Features)

// WithSearchField changes the field matched by the keyword search.
func WithSearchField(field string) Option {
	return func(f *Features) {
		f.searchField = field
	}
}

// WithSchema sets the field kinds used to coerce filter values.
func WithSchema(schema Schema) Option {
	return func(f *Features) {
		f.schema = schema
	}
}

// NewFeatures stores base and params unchanged. Nothing is validated here.
func NewFeatures(base Descriptor, params url.Values, opts ...Option) *Features {
	f := &Features{
		query:       base,
		params:      params,
		searchField: DefaultSearchField,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Query returns the composed descriptor, ready to be executed by its store.
func (f *Features) Query() Descriptor {
	return f.query
}

// Page returns the window applied by Pagination (zero value if it was not called).
func (f *Features) Page() OffsetPagination {
	return f.page
}

// Search matches documents whose search field contains the keyword parameter,
// case-insensitively. Without a keyword it does nothing.
func (f *Features) Search() *Features {
	keyword := f.params.Get(KeyKeyword)
	if keyword == "" {
		return f
	}

	f.query = f.query.Where(bson.M{
		f.searchField: bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"},
	})
	return f
}

// Filter turns every non-reserved parameter into a field condition.
//
//	category=Cow                   -> {category: "Cow"}
//	category=Cow&category=Sheep    -> {category: {$in: ["Cow", "Sheep"]}}
//	price[gte]=10&price[lte]=20    -> {price: {$gte: 10, $lte: 20}}
//	images[url]=a.png              -> {"images.url": "a.png"}
func (f *Features) Filter() *Features {
	if predicate := f.FilterPredicate(); len(predicate) > 0 {
		f.query = f.query.Where(predicate)
	}
	return f
}

// FilterPredicate builds the predicate Filter would apply.
func (f *Features) FilterPredicate() bson.M {
	conditions := make(map[string]bson.M)

	set := func(field, op string, value interface{}) {
		ops, ok := conditions[field]
		if !ok {
			ops = bson.M{}
			conditions[field] = ops
		}
		ops[op] = value
	}

	for _, key := range sortedKeys(f.params) {
		values := nonEmpty(f.params[key])
		if len(values) == 0 {
			continue
		}

		field, suffix := key, ""
		if m := bracketKey.FindStringSubmatch(key); m != nil {
			field, suffix = m[1], m[2]
		}
		if IsReserved(field) {
			continue
		}

		if suffix != "" {
			if op, ok := OperatorFor(suffix); ok {
				set(field, op, f.schema.coerce(field, values[len(values)-1], true))
				continue
			}
			field = field + "." + suffix
		}

		if len(values) == 1 {
			set(field, "$eq", f.schema.coerce(field, values[0], false))
			continue
		}
		in := make(bson.A, 0, len(values))
		for _, v := range values {
			in = append(in, f.schema.coerce(field, v, false))
		}
		set(field, "$in", in)
	}

	predicate := bson.M{}
	for field, ops := range conditions {
		if eq, ok := ops["$eq"]; ok && len(ops) == 1 {
			predicate[field] = eq
			continue
		}
		predicate[field] = ops
	}
	return predicate
}

// Sort applies the sort parameter ("-createdAt,price"); when it is absent the
// fallback keys are used instead.
func (f *Features) Sort(fallback ...Sort) *Features {
	keys := ParseSort(f.params.Get(KeySort))
	if len(keys) == 0 {
		keys = fallback
	}
	if len(keys) > 0 {
		f.query = f.query.Sort(keys...)
	}
	return f
}

// Pagination skips to the requested page of resultsPerPage documents.
// A missing, non-numeric or non-positive page means page 1. Pages past the
// end are not an error, they just yield no documents; a page whose skip would
// overflow int64 is treated the same way.
func (f *Features) Pagination(resultsPerPage int) *Features {
	if resultsPerPage < 1 {
		return f
	}

	f.page = OffsetPagination{
		Limit:  resultsPerPage,
		Offset: skipFor(CurrentPage(f.params), resultsPerPage),
	}
	f.query = f.query.Skip(f.page.Offset).Limit(int64(f.page.Limit))
	return f
}

// skipFor devuelve resultsPerPage*(page-1), saturado en math.MaxInt64.
func skipFor(page, resultsPerPage int) int64 {
	prev, size := int64(page)-1, int64(resultsPerPage)
	if prev > math.MaxInt64/size {
		return math.MaxInt64
	}
	return prev * size
}

// CurrentPage reads the page parameter, defaulting to 1.
func CurrentPage(params url.Values) int {
	page, err := strconv.Atoi(params.Get(KeyPage))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseSort reads a comma or space separated list of fields, a leading "-"
// meaning descending.
func ParseSort(raw string) []Sort {
	var keys []Sort
	for _, token := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
		desc := strings.HasPrefix(token, "-")
		field := strings.TrimLeft(token, "-+")
		if field == "" {
			continue
		}
		keys = append(keys, Sort{Field: field, Desc: desc})
	}
	return keys
}

func sortedKeys(params url.Values) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
