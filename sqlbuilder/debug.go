package sqlbuilder

import "github.com/k0kubun/pp/v3"

// DebugString pretty-prints stmt with its bind args for troubleshooting
// generated SQL, the way the teacher's cli.go uses k0kubun/pp for schema
// diff output.
func DebugString(stmt string, args []any) string {
	return pp.Sprintln(stmt) + pp.Sprintln(args)
}
