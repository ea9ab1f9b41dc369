package mocks

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	sharedQuery "github.com/davicafu/storefront/internal/shared/infra/platform/query"
	"go.mongodb.org/mongo-driver/bson"
)

// MemQuery es un sharedQuery.Descriptor que se evalúa en memoria contra
// documentos JSON. Entiende el subconjunto de operadores que generan los
// builders: $and, $eq, $gt, $gte, $lt, $lte, $in, $ne, $regex/$options.
type MemQuery struct {
	predicates []bson.M
	sort       []sharedQuery.Sort
	skip       int64
	limit      int64
}

var _ sharedQuery.Descriptor = (*MemQuery)(nil)

func NewMemQuery() *MemQuery {
	return &MemQuery{}
}

func (q *MemQuery) Where(predicate bson.M) sharedQuery.Descriptor {
	if len(predicate) == 0 {
		return q
	}
	for _, p := range q.predicates {
		if reflect.DeepEqual(p, predicate) {
			return q
		}
	}
	q.predicates = append(q.predicates, predicate)
	return q
}

func (q *MemQuery) Skip(n int64) sharedQuery.Descriptor {
	q.skip = n
	return q
}

func (q *MemQuery) Limit(n int64) sharedQuery.Descriptor {
	q.limit = n
	return q
}

func (q *MemQuery) Sort(keys ...sharedQuery.Sort) sharedQuery.Descriptor {
	q.sort = keys
	return q
}

// Predicates devuelve los predicados acumulados, para aserciones.
func (q *MemQuery) Predicates() []bson.M { return q.predicates }

// SkipValue y LimitValue exponen la ventana de paginación.
func (q *MemQuery) SkipValue() int64  { return q.skip }
func (q *MemQuery) LimitValue() int64 { return q.limit }

// SortKeys devuelve el orden aplicado.
func (q *MemQuery) SortKeys() []sharedQuery.Sort { return q.sort }

// Run aplica el descriptor a items, que se comparan por su forma JSON.
func Run[T any](d sharedQuery.Descriptor, items []T) ([]T, error) {
	q, ok := d.(*MemQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected descriptor %T", d)
	}

	type row struct {
		item T
		doc  map[string]interface{}
	}
	var rows []row
	for _, it := range items {
		doc, err := toDoc(it)
		if err != nil {
			return nil, err
		}
		if q.matches(doc) {
			rows = append(rows, row{item: it, doc: doc})
		}
	}

	if len(q.sort) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, k := range q.sort {
				c := compare(lookup(rows[i].doc, k.Field), lookup(rows[j].doc, k.Field))
				if c == 0 {
					continue
				}
				if k.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	start := len(rows)
	if q.skip >= 0 && q.skip < int64(len(rows)) {
		start = int(q.skip)
	}
	end := len(rows)
	if q.limit > 0 && start+int(q.limit) < end {
		end = start + int(q.limit)
	}

	out := make([]T, 0, end-start)
	for _, r := range rows[start:end] {
		out = append(out, r.item)
	}
	return out, nil
}

func toDoc(item interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (q *MemQuery) matches(doc map[string]interface{}) bool {
	for _, p := range q.predicates {
		if !matchPredicate(doc, p) {
			return false
		}
	}
	return true
}

func matchPredicate(doc map[string]interface{}, p bson.M) bool {
	for field, cond := range p {
		if field == "$and" {
			for _, sub := range asSlice(cond) {
				m, ok := sub.(bson.M)
				if !ok || !matchPredicate(doc, m) {
					return false
				}
			}
			continue
		}
		if !matchCondition(lookup(doc, field), cond) {
			return false
		}
	}
	return true
}

func matchCondition(value interface{}, cond interface{}) bool {
	ops, isOps := cond.(bson.M)
	if !isOps || !hasOperators(ops) {
		return equals(value, cond)
	}

	for op, arg := range ops {
		switch op {
		case "$eq":
			if !equals(value, arg) {
				return false
			}
		case "$ne":
			if equals(value, arg) {
				return false
			}
		case "$gt", "$gte", "$lt", "$lte":
			if value == nil {
				return false
			}
			c, ok := compareValues(value, arg)
			if !ok {
				return false
			}
			switch {
			case op == "$gt" && c <= 0, op == "$gte" && c < 0, op == "$lt" && c >= 0, op == "$lte" && c > 0:
				return false
			}
		case "$in":
			found := false
			for _, candidate := range asSlice(arg) {
				if equals(value, candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "$regex":
			pattern := fmt.Sprint(arg)
			if opts, ok := ops["$options"].(string); ok && strings.Contains(opts, "i") {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false
			}
			s, ok := value.(string)
			if !ok || !re.MatchString(s) {
				return false
			}
		case "$options":
		default:
			return false
		}
	}
	return true
}

func hasOperators(m bson.M) bool {
	for k := range m {
		if strings.HasPrefix(k, "$") {
			return true
		}
	}
	return false
}

// lookup resuelve rutas con puntos; si atraviesa un array devuelve los valores de cada elemento.
func lookup(doc map[string]interface{}, path string) interface{} {
	var current interface{} = doc
	for _, part := range strings.Split(path, ".") {
		switch v := current.(type) {
		case map[string]interface{}:
			current = v[part]
		case []interface{}:
			var values []interface{}
			for _, el := range v {
				if m, ok := el.(map[string]interface{}); ok {
					values = append(values, m[part])
				}
			}
			current = values
		default:
			return nil
		}
	}
	return current
}

func equals(value, expected interface{}) bool {
	if arr, ok := value.([]interface{}); ok {
		for _, el := range arr {
			if equals(el, expected) {
				return true
			}
		}
		return false
	}
	c, ok := compareValues(value, expected)
	return ok && c == 0
}

func compareValues(a, b interface{}) (int, bool) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return 0, true
		}
		return 0, false
	}
	a, b = normalize(a, b), normalize(b, a)
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		return cmpFloat(av, bv), true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok || av == bv {
			return 0, ok
		}
		if !av {
			return -1, true
		}
		return 1, true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	}
	return 0, false
}

// normalize lleva v al tipo de other: números a float64 y strings RFC3339 a time.Time.
func normalize(v, other interface{}) interface{} {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		if _, isTime := other.(time.Time); isTime {
			if t, err := time.Parse(time.RFC3339Nano, x); err == nil {
				return t
			}
		}
	}
	return v
}

func compare(a, b interface{}) int {
	if c, ok := compareValues(a, b); ok {
		return c
	}
	switch {
	case a == nil && b != nil:
		return -1
	case a != nil && b == nil:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func asSlice(v interface{}) []interface{} {
	switch x := v.(type) {
	case bson.A:
		return x
	case []interface{}:
		return x
	case []bson.M:
		out := make([]interface{}, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out
	}
	return nil
}
