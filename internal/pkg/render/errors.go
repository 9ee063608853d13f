package render

import "errors"

// Ошибки уровня запроса; транспорт мапит их в 4xx
var (
	ErrDecode            = errors.New("image decode failed")
	ErrUnsupportedFilter = errors.New("unsupported filter")
	ErrInvalidRequest    = errors.New("invalid composition request")
)
