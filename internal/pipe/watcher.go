package pipe

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"ferret/internal/log"
	"ferret/internal/msg"
)

// Watcher tails msg_in and turns appended lines into external messages.
// Each line is one YAML document; malformed lines are skipped, so a
// misbehaving script can never crash the session.
type Watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	offset int64
	msgs   chan msg.External
	done   chan struct{}
}

// NewWatcher starts tailing the given msg_in file. The file's directory is
// watched rather than the file itself so truncation and recreation by
// external writers are tolerated.
func NewWatcher(msgIn string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(msgIn)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:  fsw,
		path: msgIn,
		msgs: make(chan msg.External, 16),
		done: make(chan struct{}),
	}
	go w.loop()

	return w, nil
}

// Messages returns the channel of parsed inbound messages.
func (w *Watcher) Messages() <-chan msg.External {
	return w.msgs
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer close(w.msgs)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Name != w.path || !event.Has(fsnotify.Write) {
				continue
			}
			for _, m := range w.drain() {
				select {
				case w.msgs <- m:
				case <-w.done:
					return
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Debug("pipe watcher error", err)
		}
	}
}

// drain reads the complete lines appended since the last read.
func (w *Watcher) drain() []msg.External {
	f, err := os.Open(w.path)
	if err != nil {
		return nil
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil || info.Size() < w.offset {
		// Truncated by an external writer; start over.
		w.offset = 0
	}

	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		return nil
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		return nil
	}

	end := bytes.LastIndexByte(buf, '\n')
	if end < 0 {
		return nil
	}
	w.offset += int64(end + 1)

	return ParseMessages(buf[:end+1])
}

// ParseMessages parses newline-separated YAML message documents, skipping
// blank and malformed lines.
func ParseMessages(data []byte) []msg.External {
	var msgs []msg.External
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var m msg.External
		if err := yaml.Unmarshal(line, &m); err != nil {
			log.Warnf("dropping unparsable pipe message %q: %v", line, err)
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs
}
