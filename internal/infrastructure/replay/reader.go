package replay

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"os"

	"erebus-server/internal/domain"
)

// Recording — запись одного забега, восстановленная из файла.
type Recording struct {
	Seed      int64
	Timestamp int64
	Profile   domain.CharacterProfile
	Actions   []Frame
}

// Frame — одно записанное действие оператора.
type Frame struct {
	Turn    int
	Site    int
	Action  domain.ActionType
	Payload json.RawMessage
}

func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*Recording, error) {
	// 1. Читаем заголовок целиком
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	rec := &Recording{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Actions:   make([]Frame, header.ActionCount),
	}

	// 2. Читаем снимок профиля и сверяем хеш
	if header.ProfileLen > 0 {
		snapshot := make([]byte, header.ProfileLen)
		if _, err := io.ReadFull(r, snapshot); err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}

		hash := fnv.New64a()
		_, _ = hash.Write(snapshot)
		if got := hash.Sum64(); got != header.ProfileHash {
			return nil, fmt.Errorf("profile hash mismatch: %x != %x", got, header.ProfileHash)
		}

		if err := json.Unmarshal(snapshot, &rec.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
	}

	// 3. Читаем кадры
	for i := 0; i < int(header.ActionCount); i++ {
		var fh FrameHeader
		if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
			return nil, err
		}

		frame := Frame{
			Turn:   int(fh.Turn),
			Site:   int(fh.Site),
			Action: domain.ActionType(fh.Action),
		}

		if fh.PayloadLen > 0 {
			frame.Payload = make([]byte, fh.PayloadLen)
			if _, err := io.ReadFull(r, frame.Payload); err != nil {
				return nil, err
			}
		} else {
			frame.Payload = json.RawMessage{}
		}

		rec.Actions[i] = frame
	}

	return rec, nil
}
