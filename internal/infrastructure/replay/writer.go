package replay

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"erebus-server/internal/domain"
)

const (
	MagicHeader string = `ERBR` // 4 байта
	Version1    uint32 = 1

	// Смещение поля ActionCount от начала файла. Патчится при Close.
	countOffset = 36
)

// FileHeader — это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк,
// только массивы и числа.
type FileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт: зерно кампании этого забега
	Timestamp   int64   // 8 байт
	ProfileHash uint64  // 8 байт: FNV-1a снимка профиля
	ProfileLen  uint32  // 4 байта: длина JSON-снимка профиля
	ActionCount uint32  // 4 байта
}

// FrameHeader — заголовок каждой записи действия.
type FrameHeader struct {
	Turn       int32  // 4
	Site       uint8  // 1
	Action     uint8  // 1
	PayloadLen uint16 // 2
}

// Library владеет каталогом с записями забегов.
type Library struct {
	SaveDir string
}

func NewLibrary(dir string) *Library {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &Library{SaveDir: dir}
}

// Recorder пишет кадры по мере разрешения ходов. Счетчик действий
// в заголовке остается нулевым до Close.
type Recorder struct {
	f     *os.File
	count uint32
	path  string
}

// Start открывает новый файл записи и пишет заголовок со снимком профиля.
// Каждый забег кампании получает свой файл.
func (l *Library) Start(seed int64, runIndex int, profile domain.CharacterProfile) (*Recorder, error) {
	snapshot, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	filename := fmt.Sprintf("run_%d_r%d_%d.erbr", seed, runIndex, time.Now().Unix())
	path := filepath.Join(l.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	hash := fnv.New64a()
	_, _ = hash.Write(snapshot)

	header := FileHeader{
		Version:     Version1,
		Seed:        seed,
		Timestamp:   time.Now().Unix(),
		ProfileHash: hash.Sum64(),
		ProfileLen:  uint32(len(snapshot)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(f, binary.LittleEndian, &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := f.Write(snapshot); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write profile: %w", err)
	}

	return &Recorder{f: f, path: path}, nil
}

// Record дописывает один кадр действия. Turn — номер хода ДО разрешения.
func (r *Recorder) Record(turn, site int, action domain.ActionType, payload json.RawMessage) error {
	if len(payload) > 65535 {
		return fmt.Errorf("payload too long: %d", len(payload))
	}
	if site < 0 || site > 255 {
		return fmt.Errorf("site index out of range: %d", site)
	}

	fh := FrameHeader{
		Turn:       int32(turn),
		Site:       uint8(site),
		Action:     uint8(action),
		PayloadLen: uint16(len(payload)),
	}
	if err := binary.Write(r.f, binary.LittleEndian, &fh); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := r.f.Write(payload); err != nil {
			return err
		}
	}

	r.count++
	return nil
}

// Path возвращает путь файла записи.
func (r *Recorder) Path() string {
	return r.path
}

// Close патчит счетчик действий в заголовке и закрывает файл.
func (r *Recorder) Close() error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], r.count)
	if _, err := r.f.WriteAt(buf[:], countOffset); err != nil {
		r.f.Close()
		return fmt.Errorf("failed to patch action count: %w", err)
	}
	return r.f.Close()
}
