// Package schema defines the property metadata layer for lazy records.
//
// A Schema is an ordered registry of property Descriptors for one record
// type. Record types declare their properties once, at definition time,
// and every instance constructed afterwards resolves attribute reads
// against that shared, immutable-after-declaration registry.
//
// Declarations use functional options:
//
//	user := schema.New("user")
//	user.MustDeclare("id", schema.Identity())
//	user.MustDeclare("email", schema.Required())
//	user.MustDeclare("display_name", schema.From("nickname", "full_name"))
//	user.MustDeclare("age", schema.WithTransform(toInt), schema.WithDefault(0))
//
// Subtypes snapshot their parent with Extend; declarations on the child
// never mutate the parent and vice versa.
package schema
