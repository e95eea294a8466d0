package record

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the persisted instance state: raw source data, explicit
// writes, and the loaded flag. The computed cache is deliberately not
// persisted; derived values are recomputed on first read after restore.
type snapshot struct {
	Schema  string         `msgpack:"schema"`
	Source  map[string]any `msgpack:"source"`
	Overlay map[string]any `msgpack:"overlay"`
	Loaded  bool           `msgpack:"loaded"`
}

// MarshalBinary encodes the record's source data, overlay, and loaded flag
// as msgpack so an instance can be rehydrated later against the same
// schema.
func (r *Record) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(snapshot{
		Schema:  r.schema.Name(),
		Source:  r.resolver.source,
		Overlay: r.resolver.overlay,
		Loaded:  r.resolver.loaded,
	})
}

// UnmarshalBinary restores a snapshot into the record. The snapshot must
// come from a record of the same schema, and the restored source data must
// still satisfy the schema's required properties. On success the previous
// instance state is replaced wholesale.
func (r *Record) UnmarshalBinary(data []byte) error {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Schema != r.schema.Name() {
		return fmt.Errorf("%w: snapshot is %q, record is %q", ErrSchemaMismatch, snap.Schema, r.schema.Name())
	}

	res := NewResolver(r.schema, snap.Source)
	for name, v := range snap.Overlay {
		res.overlay[name] = v
	}
	res.loaded = snap.Loaded
	r.bind(res)

	if err := res.VerifyRequired(); err != nil {
		return err
	}
	r.resolver = res
	return nil
}
