package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ConverterService превращает сырые книги расписаний в разобранный
// JSON. Каталог расписаний содержит подкаталоги raw и parsed; имена
// файлов без расширения совпадают.
type ConverterService struct {
	parser *ParserService
}

func NewConverterService(parser *ParserService) *ConverterService {
	return &ConverterService{parser: parser}
}

// ConvertFile разбирает одну книгу и возвращает JSON четырёх курсов
func (s *ConverterService) ConvertFile(path string, pretty bool) ([]byte, error) {
	sheets, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}

	courses, err := s.parser.ParseWorkbook(sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if pretty {
		return json.MarshalIndent(courses, "", "  ")
	}
	return json.Marshal(courses)
}

// ConvertDir разбирает новые книги из rawDir и кладёт JSON с теми же
// именами в parsedDir. Уже сконвертированные файлы пропускаются.
// Битый файл не останавливает обработку остальных; все ошибки
// возвращаются разом.
func (s *ConverterService) ConvertDir(rawDir, parsedDir string) error {
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		return fmt.Errorf("failed to read raw dir: %w", err)
	}
	if err := os.MkdirAll(parsedDir, 0o755); err != nil {
		return fmt.Errorf("failed to create parsed dir: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		target := filepath.Join(parsedDir, jsonName(name))
		if _, err := os.Stat(target); err == nil {
			continue
		}

		log.Printf("Конвертация расписания: %s", name)
		data, err := s.ConvertFile(filepath.Join(rawDir, name), true)
		if err != nil {
			log.Printf("Ошибка конвертации %s: %v", name, err)
			errs = append(errs, err)
			continue
		}

		if err := os.WriteFile(target, data, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %s: %w", target, err))
			continue
		}
		log.Printf("Расписание сохранено: %s", target)
	}

	return errors.Join(errs...)
}

func jsonName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
}
