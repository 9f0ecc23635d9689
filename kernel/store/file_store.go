/*
	(c) Copyright NetFoundry Inc. Inc.

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

	https://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists JSON snapshots of a state tree.
type FileStore struct {
	Path string
	mu   sync.RWMutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the snapshot. A missing file yields an empty tree.
func (s *FileStore) Load() (Tree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return make(Tree), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return toTree(raw), nil
}

// Save writes the snapshot, creating parent directories as needed.
func (s *FileStore) Save(state Tree) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(Plain(state), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

func toTree(raw map[string]any) Tree {
	out := make(Tree, len(raw))
	for k, v := range raw {
		if child, ok := v.(map[string]any); ok {
			out[k] = toTree(child)
			continue
		}
		out[k] = v
	}
	return out
}
