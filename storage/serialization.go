// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/poiesic/solvent/embedding"
)

// MarshalRecord serializes an embedding record to bytes.
func MarshalRecord(record *embedding.Record) []byte {
	buf := make([]byte, embedding.RecordMUS.Size(*record))
	embedding.RecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalRecord deserializes an embedding record from bytes.
func UnmarshalRecord(data []byte) (*embedding.Record, error) {
	record, _, err := embedding.RecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalMeta serializes cache metadata to bytes.
func MarshalMeta(meta *embedding.Meta) []byte {
	buf := make([]byte, embedding.MetaMUS.Size(*meta))
	embedding.MetaMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalMeta deserializes cache metadata from bytes.
func UnmarshalMeta(data []byte) (*embedding.Meta, error) {
	meta, _, err := embedding.MetaMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}
