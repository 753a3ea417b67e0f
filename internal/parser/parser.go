package parser

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mcncl/proptyper/internal/errors"
	"github.com/mcncl/proptyper/internal/models"
)

// Parse reads exactly one JSON value from reader. The document is first
// decoded strictly to validate it, then walked token by token to build a tree
// whose objects keep their keys in document order, which a plain decode into a
// map would lose.
func Parse(reader io.Reader) (models.JSONValue, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.JSONValue{}, errors.NewInputError("failed to read input", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.JSONValue{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	if err := validate(data); err != nil {
		return models.JSONValue{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeValue(dec)
	if err != nil {
		return models.JSONValue{}, wrapDecodeError(err)
	}
	return root, nil
}

// validate checks that data holds one well-formed JSON value and nothing but
// whitespace after it.
func validate(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var first interface{}
	if err := decoder.Decode(&first); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return wrapDecodeError(err)
	}

	if decoder.More() {
		var trailingValue interface{}
		if err := decoder.Decode(&trailingValue); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return errors.NewParsingError("invalid trailing data after first JSON value", fmt.Errorf("%w: %v", errors.ErrInvalidJSON, err))
			}
		} else {
			return errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}
	return nil
}

func wrapDecodeError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.NewParsingError("failed to decode JSON", fmt.Errorf("%w: %v", errors.ErrInvalidJSON, err))
}

func valueFromToken(dec *json.Decoder, tok json.Token) (models.JSONValue, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return models.JSONValue{}, errors.NewParsingError(fmt.Sprintf("unexpected delimiter %q", rune(v)), errors.ErrInvalidJSON)
		}
	case string:
		return models.StringValue(v), nil
	case json.Number:
		// The decoder hands out number text that aliases its read buffer.
		return models.NumberValue(strings.Clone(string(v))), nil
	case float64:
		return models.NumberValue(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case bool:
		return models.BoolValue(v), nil
	case nil:
		return models.NullValue(), nil
	default:
		return models.JSONValue{}, errors.NewParsingError(fmt.Sprintf("unexpected token %T", tok), errors.ErrInvalidJSON)
	}
}

func decodeValue(dec *json.Decoder) (models.JSONValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return models.JSONValue{}, err
	}
	return valueFromToken(dec, tok)
}

func decodeObject(dec *json.Decoder) (models.JSONValue, error) {
	obj := models.ObjectValue()
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return models.JSONValue{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return models.JSONValue{}, errors.NewParsingError(fmt.Sprintf("object key must be a string, got %v", tok), errors.ErrInvalidJSON)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return models.JSONValue{}, err
		}
		// A repeated key keeps its first position and takes the last value.
		if i, seen := index[key]; seen {
			obj.Members[i].Value = val
			continue
		}
		index[key] = len(obj.Members)
		obj.Members = append(obj.Members, models.Member{Key: key, Value: val})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return models.JSONValue{}, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (models.JSONValue, error) {
	arr := models.ArrayValue()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return models.JSONValue{}, err
		}
		arr.Array = append(arr.Array, val)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return models.JSONValue{}, err
	}
	return arr, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.NewParsingError(fmt.Sprintf("expected %q, got %v", rune(want), tok), errors.ErrInvalidJSON)
	}
	return nil
}

// ParseBytes parses JSON from a byte slice
func ParseBytes(data []byte) (models.JSONValue, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.JSONValue{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return Parse(bytes.NewReader(data))
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.JSONValue, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.JSONValue{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.JSONValue, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.JSONValue{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.JSONValue{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.JSONValue{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.JSONValue{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.JSONValue{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

// Valid reports whether s holds exactly one JSON value.
func Valid(s string) bool {
	_, err := ParseString(s)
	return err == nil
}
