package reconciler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

const dictionaryFileHeader = "# Responsável: lista de palavras-chave.\n# A ordem dos responsáveis e das palavras define a precedência.\n"

// DictionaryEntry maps one responsible party to its keywords.
type DictionaryEntry struct {
	Responsible string
	Keywords    []string
}

// Dictionary is an ordered, immutable keyword dictionary. Entry order
// decides match precedence.
type Dictionary struct {
	entries []DictionaryEntry
}

// NewDictionary copies entries into a new dictionary. Entries whose
// responsible name is blank are ignored; other names are kept verbatim.
func NewDictionary(entries ...DictionaryEntry) *Dictionary {
	d := &Dictionary{entries: make([]DictionaryEntry, 0, len(entries))}
	for _, e := range entries {
		if strings.TrimSpace(e.Responsible) == "" {
			continue
		}
		d.entries = append(d.entries, DictionaryEntry{
			Responsible: e.Responsible,
			Keywords:    cloneStrings(e.Keywords),
		})
	}
	return d
}

// Entries returns a copy of the entries in precedence order.
func (d *Dictionary) Entries() []DictionaryEntry {
	if d == nil {
		return nil
	}
	out := make([]DictionaryEntry, len(d.entries))
	for i, e := range d.entries {
		out[i] = DictionaryEntry{Responsible: e.Responsible, Keywords: cloneStrings(e.Keywords)}
	}
	return out
}

// Len returns the number of responsible parties.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// KeywordCount returns the total number of keywords across all entries.
func (d *Dictionary) KeywordCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, e := range d.entries {
		n += len(e.Keywords)
	}
	return n
}

// DefaultDictionary returns the built-in dictionary written by
// EnsureDictionaryFile when no dictionary file exists yet.
func DefaultDictionary() *Dictionary {
	return NewDictionary(
		DictionaryEntry{Responsible: "Jurídico", Keywords: []string{
			"processo judicial", "liminar", "recurso", "citação", "intimação", "audiência", "sentença",
		}},
		DictionaryEntry{Responsible: "Financeiro", Keywords: []string{
			"pagamento", "fatura", "boleto", "nota fiscal", "reembolso", "cobrança",
		}},
		DictionaryEntry{Responsible: "Compras", Keywords: []string{
			"pedido de compra", "cotação", "fornecedor", "orçamento",
		}},
		DictionaryEntry{Responsible: "Logística", Keywords: []string{
			"entrega", "frete", "transporte", "armazém", "devolução",
		}},
	)
}

// LoadDictionary reads a dictionary file. The file is a YAML (or JSON) mapping
// from responsible party to a list of keywords; mapping order is preserved.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	d, err := ParseDictionary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// ParseDictionary decodes dictionary data keeping the mapping order.
func ParseDictionary(data []byte) (*Dictionary, error) {
	var raw yaml.MapSlice
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	entries := make([]DictionaryEntry, 0, len(raw))
	for _, item := range raw {
		name, ok := item.Key.(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("decode dictionary: invalid responsible name %v", item.Key)
		}
		keywords, err := keywordList(item.Value)
		if err != nil {
			return nil, fmt.Errorf("decode dictionary: %s: %w", name, err)
		}
		entries = append(entries, DictionaryEntry{Responsible: name, Keywords: keywords})
	}
	return NewDictionary(entries...), nil
}

func keywordList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			switch kw := item.(type) {
			case string:
				out = append(out, kw)
			case nil:
			default:
				out = append(out, FormatValue(kw))
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("keywords must be a list, got %T", v)
	}
}

// MarshalDictionary encodes d as YAML in precedence order.
func MarshalDictionary(d *Dictionary) ([]byte, error) {
	ms := make(yaml.MapSlice, 0, d.Len())
	for _, e := range d.Entries() {
		keywords := e.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		ms = append(ms, yaml.MapItem{Key: e.Responsible, Value: keywords})
	}
	data, err := yaml.Marshal(ms)
	if err != nil {
		return nil, fmt.Errorf("encode dictionary: %w", err)
	}
	return append([]byte(dictionaryFileHeader), data...), nil
}

// SaveDictionary writes d to path through a temporary file.
func SaveDictionary(path string, d *Dictionary) error {
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return fmt.Errorf("create dictionary dir: %w", err)
	}
	data, err := MarshalDictionary(d)
	if err != nil {
		return err
	}
	tmp := clean + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp dictionary: %w", err)
	}
	if err := os.Rename(tmp, clean); err != nil {
		return fmt.Errorf("rename dictionary: %w", err)
	}
	return nil
}

// EnsureDictionaryFile writes defaults to path when no file exists there yet,
// giving users a starting point to edit. It reports whether a file was created.
func EnsureDictionaryFile(path string, defaults *Dictionary) (bool, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return false, nil
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat dictionary: %w", err)
	}
	if err := SaveDictionary(clean, defaults); err != nil {
		return false, err
	}
	return true, nil
}
