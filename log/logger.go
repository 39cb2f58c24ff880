// SPDX-License-Identifier: ice License 1.0

package log

func Default() *Logger {
	return new(Logger)
}

func With(fields ...any) *Logger {
	return Default().With(fields...)
}

func (l *Logger) With(fields ...any) *Logger {
	merged := make([]any, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &Logger{fields: merged}
}

func (l *Logger) Fields() []any {
	return append(make([]any, 0, len(l.fields)), l.fields...)
}

func (l *Logger) Error(err error, fields ...any) {
	Error(err, l.merge(fields)...)
}

func (l *Logger) Warn(msg string, fields ...any) {
	Warn(msg, l.merge(fields)...)
}

func (l *Logger) Info(msg string, fields ...any) {
	Info(msg, l.merge(fields)...)
}

func (l *Logger) Debug(msg string, fields ...any) {
	Debug(msg, l.merge(fields)...)
}

func (l *Logger) merge(fields []any) []any {
	if len(l.fields) == 0 {
		return fields
	}

	return append(l.Fields(), fields...)
}
