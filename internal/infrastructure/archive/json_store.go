package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONStore ведет журнал забегов в локальном JSON-файле.
// Запасной вариант для разработки без поднятой базы.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

type jsonData struct {
	Runs []RunRecord `json:"runs"`
}

// NewJSONStore открывает файл журнала, создавая его при отсутствии.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data:     &jsonData{},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %v", err)
		}
	} else {
		if err := store.saveLocked(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %v", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(file, js.data)
}

// saveLocked пишет файл целиком. Вызывающий держит mutex на запись.
func (js *JSONStore) saveLocked() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveRun дописывает итог забега и сбрасывает файл на диск.
func (js *JSONStore) SaveRun(rec RunRecord) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	js.data.Runs = append(js.data.Runs, rec)
	return js.saveLocked()
}

// RecentRuns возвращает последние забеги, новейшие первыми.
func (js *JSONStore) RecentRuns(limit int) ([]RunRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	n := len(js.data.Runs)
	if limit > n {
		limit = n
	}

	records := make([]RunRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		records = append(records, js.data.Runs[i])
	}

	return records, nil
}

// Close ничего не делает: файл сбрасывается на каждой записи.
func (js *JSONStore) Close() error {
	return nil
}
