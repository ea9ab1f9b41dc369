package mongodb

import (
	"fmt"
	"net/http"
	"regexp"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

// E11000 duplicate key error collection: db.users index: email_1 dup key: { email: "a@b.c" }
var dupKeyField = regexp.MustCompile(`dup key: \{ ?"?([\w.]+)"?\s*:`)

// TranslateError convierte los errores de escritura conocidos en errores de dominio.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		field := "key"
		if m := dupKeyField.FindStringSubmatch(err.Error()); m != nil {
			field = m[1]
		}
		return sharedDomain.WrapError(http.StatusBadRequest, fmt.Sprintf("Duplicate %s entered", field), err)
	}
	return err
}
