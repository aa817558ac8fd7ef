package shared

import (
	"context"
	"math"
	"reflect"
	"sage/shared/cache"
	"sage/shared/constant"
	"sage/shared/dto"
	"sage/shared/timezone"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins key parts with ':' into a single cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a cache key from a prefix plus the query
// parameters and filters that shaped the result set.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	parts := []string{
		prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		where,
	}

	for key, value := range args {
		parts = append(parts, key, toString(value))
	}

	return BuildCacheKey(parts...)
}

// InvalidateCaches clears every cached entry under the given prefix.
func InvalidateCaches(ctx context.Context, store cache.RedisCache, prefix string) {
	if err := store.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func toString(value any) string {
	switch val := value.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
