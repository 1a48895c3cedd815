package reconciler

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Service holds the configuration and keyword dictionary shared by the CLI
// and the desktop app, and runs the pipeline with logging.
type Service struct {
	cfgMu sync.RWMutex
	cfg   Config
	dict  *Dictionary

	logger zerolog.Logger
}

// NewService loads the dictionary named by cfg, writing the default one first
// when the file does not exist yet.
func NewService(cfg Config, logger zerolog.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	created, err := EnsureDictionaryFile(cfg.DictionaryPath, DefaultDictionary())
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info().Str("path", cfg.DictionaryPath).Msg("default dictionary written")
	}
	dict, err := LoadDictionary(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}
	s := NewServiceWithDictionary(cfg, dict, logger)
	s.logDictionary(cfg.DictionaryPath, dict)
	return s, nil
}

// NewServiceWithDictionary constructs a service around an already loaded dictionary.
func NewServiceWithDictionary(cfg Config, dict *Dictionary, logger zerolog.Logger) *Service {
	cfg.ApplyDefaults()
	if dict == nil {
		dict = NewDictionary()
	}
	return &Service{cfg: cfg, dict: dict, logger: logger}
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Clone()
}

// UpdateConfig replaces the configuration and returns the stored value.
// When the dictionary path changes the new dictionary is loaded first; on
// failure neither the configuration nor the dictionary change.
func (s *Service) UpdateConfig(cfg Config) (Config, error) {
	cfg.ApplyDefaults()
	cfg = cfg.Clone()

	s.cfgMu.RLock()
	prev := s.cfg.DictionaryPath
	s.cfgMu.RUnlock()

	var dict *Dictionary
	if filepath.Clean(prev) != filepath.Clean(cfg.DictionaryPath) {
		loaded, err := LoadDictionary(cfg.DictionaryPath)
		if err != nil {
			return s.Config(), fmt.Errorf("reload dictionary: %w", err)
		}
		dict = loaded
	}

	s.cfgMu.Lock()
	s.cfg = cfg
	if dict != nil {
		s.dict = dict
	}
	s.cfgMu.Unlock()

	if dict != nil {
		s.logDictionary(cfg.DictionaryPath, dict)
	}
	return cfg.Clone(), nil
}

// Dictionary returns the active keyword dictionary.
func (s *Service) Dictionary() *Dictionary {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.dict
}

// ReloadDictionary reads the dictionary file named in the configuration
// again. The active dictionary is kept when loading fails.
func (s *Service) ReloadDictionary() error {
	path := s.Config().DictionaryPath
	dict, err := LoadDictionary(path)
	if err != nil {
		return fmt.Errorf("reload dictionary: %w", err)
	}
	s.cfgMu.Lock()
	s.dict = dict
	s.cfgMu.Unlock()
	s.logDictionary(path, dict)
	return nil
}

// Process runs the pipeline on the current and reference datasets using the
// configuration and dictionary active when the call starts.
func (s *Service) Process(current, reference Dataset) (*Result, error) {
	cfg := s.Config()
	dict := s.Dictionary()
	start := time.Now()

	res, err := Run(current, reference, PipelineOptions{
		KeyColumnTokens: cfg.KeyColumnTokens,
		TextColumn:      cfg.TextColumn,
		Dictionary:      dict,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Int("current_rows", len(current)).
			Int("reference_rows", len(reference)).
			Msg("processing aborted")
		return nil, err
	}
	if shadowed := countReferenceDuplicates(reference, res.KeyColumn); shadowed > 0 {
		s.logger.Warn().Int("shadowed", shadowed).Str("key_column", res.KeyColumn).
			Msg("reference dataset repeats keys, last occurrence wins")
	}
	s.logger.Info().
		Str("key_column", res.KeyColumn).
		Int("duplicates_removed", res.Stats.DuplicatesRemoved).
		Int("processed", res.Stats.Processed).
		Int("pending", res.Stats.Pending).
		Int("carried", res.Stats.Carried).
		Int("classified", res.Stats.Classified).
		Int("unassigned", res.Stats.Unassigned).
		Dur("elapsed", time.Since(start)).
		Msg("processing finished")
	return res, nil
}

// Export writes the result to path using the configured sheet name.
func (s *Service) Export(path string, res *Result) error {
	if res == nil || len(res.Records) == 0 {
		return fmt.Errorf("export: %w", ErrMissingInput)
	}
	if err := WriteDatasetFile(path, res.Records, s.Config().SheetName); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	s.logger.Info().Str("path", path).Int("rows", len(res.Records)).Msg("result exported")
	return nil
}

// ExportTo encodes the result to w in the given format. name is only used
// for logging.
func (s *Service) ExportTo(w io.Writer, name, format string, res *Result) error {
	if res == nil || len(res.Records) == 0 {
		return fmt.Errorf("export: %w", ErrMissingInput)
	}
	if err := WriteDataset(w, format, res.Records, s.Config().SheetName); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	s.logger.Info().Str("name", name).Str("format", format).Int("rows", len(res.Records)).Msg("result exported")
	return nil
}

func (s *Service) logDictionary(path string, dict *Dictionary) {
	s.logger.Info().
		Str("path", path).
		Int("responsibles", dict.Len()).
		Int("keywords", dict.KeywordCount()).
		Msg("dictionary loaded")
}
