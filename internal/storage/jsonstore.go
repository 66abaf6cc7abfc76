// internal/storage/jsonstore.go
//
// 提供帳戶資料檔 (JSON) 的讀取與寫入實作。
// 寫入採「原子寫入」策略：先寫入 .tmp 檔，再以 rename() 取代原檔。
// 讀取時保留 key 的原始順序，讓列表順序在重啟後保持一致。
//
// ───────────────────────────────
// 錯誤處理：
//   - 檔案不存在或為空：視為空資料，回傳 nil 錯誤。
//   - 檔案無法解析：先將原檔改名隔離 (Quarantine)，再回傳 ErrCorrupt，
//     避免下一次儲存把無法讀取的舊資料直接覆蓋掉。
//
// ───────────────────────────────
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// ErrCorrupt 代表資料檔存在但內容無法解析。
var ErrCorrupt = errors.New("data file is corrupt")

// indent 為輸出縮排，與舊版資料檔一致（4 個空白）。
const indent = "    "

// JSONFile 以單一 JSON 檔案保存所有帳戶。
type JSONFile struct {
	Path string
}

// NewJSONFile 建立指向 path 的檔案後端；檔案可以尚未存在。
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Load 讀取資料檔並依檔案中的 key 順序回傳所有帳戶。
// 同名 key 重複出現時以最後一筆為準，位置維持第一次出現處。
func (j *JSONFile) Load() ([]Entry, error) {
	f, err := os.Open(j.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", j.Path, err)
	}

	entries, err := decodeEntries(f)
	f.Close()
	if err == nil {
		return entries, nil
	}

	// 無法解析 → 隔離原檔
	moved, qerr := Quarantine(j.Path)
	if qerr != nil {
		// 無法隔離時不回傳 ErrCorrupt，避免呼叫端以空資料繼續並覆蓋原檔
		return nil, fmt.Errorf("%s is corrupt (%v) and could not be moved aside: %w", j.Path, err, qerr)
	}
	return nil, fmt.Errorf("%w: %s: %v (moved to %s)", ErrCorrupt, j.Path, err, moved)
}

// decodeEntries 逐 token 解析最上層物件，以保留 key 順序。
func decodeEntries(r io.Reader) ([]Entry, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		// 空檔案（或僅有空白）
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("top level must be an object, got %v", tok)
	}

	var out []Entry
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", tok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("account %q: %w", name, err)
		}
		if i, seen := index[name]; seen {
			out[i].Record = rec
			continue
		}
		index[name] = len(out)
		out = append(out, Entry{Name: name, Record: rec})
	}

	// 結尾的 '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	// 物件之後不得有其他內容
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing data after top-level object")
		}
		return nil, err
	}
	return out, nil
}

// Save 將所有帳戶依傳入順序寫入檔案，並採原子方式取代原檔。
func (j *JSONFile) Save(entries []Entry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	tmp := j.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	// 原子替換
	if err := os.Rename(tmp, j.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", j.Path, err)
	}
	return nil
}

// encodeEntries 手動組出最上層物件；encoding/json 對 map 會排序 key，無法保留插入順序。
func encodeEntries(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if len(entries) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for i, e := range entries {
		rec := e.Record
		if rec.History == nil {
			rec.History = []string{}
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.MarshalIndent(rec, indent, indent)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", e.Name, err)
		}
		buf.WriteString(indent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// maxQuarantineSuffix 為同一秒內隔離檔名的序號上限。
const maxQuarantineSuffix = 100

// Quarantine 將 path 改名為 path.corrupt-<時間戳>，回傳新路徑。
// 目標已存在時依序加上 -1、-2…，不覆蓋先前隔離的檔案。
func Quarantine(path string) (string, error) {
	base := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102-150405"))
	for i := 0; i < maxQuarantineSuffix; i++ {
		dst := base
		if i > 0 {
			dst = fmt.Sprintf("%s-%d", base, i)
		}
		if _, err := os.Lstat(dst); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		if err := os.Rename(path, dst); err != nil {
			return "", err
		}
		return dst, nil
	}
	return "", fmt.Errorf("quarantine %s: %s-* already taken", path, base)
}
