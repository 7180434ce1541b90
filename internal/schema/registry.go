// Package schema declares the field model for every entity kind the
// platform persists, and validates raw payloads against it. The registry
// is the single source of truth: handlers, the introspection endpoint and
// the document store all key off the lower-cased kind names declared here.
package schema

type FieldType string

const (
	TypeString     FieldType = "string"
	TypeInt        FieldType = "int"
	TypeFloat      FieldType = "float"
	TypeBool       FieldType = "bool"
	TypeStringList FieldType = "string_list"
	TypeIntList    FieldType = "int_list"
	TypeObjectList FieldType = "object_list"
	TypeMap        FieldType = "map"
	TypeTimestamp  FieldType = "timestamp"
)

// FieldSpec describes one declared field of an entity kind.
type FieldSpec struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	// Nullable marks fields that accept an explicit JSON null, which then
	// reads the same as omitting the field. Everything else rejects null.
	Nullable bool        `json:"nullable,omitempty"`
	Default  interface{} `json:"default"`
	Allowed  []string    `json:"allowed_values,omitempty"`
	// Fields describes the element shape for object_list fields.
	Fields []FieldSpec `json:"fields,omitempty"`
}

// Kind constants. The string values double as collection names.
const (
	KindUser         = "user"
	KindCourse       = "course"
	KindLesson       = "lesson"
	KindAssignment   = "assignment"
	KindQuiz         = "quiz"
	KindEnrollment   = "enrollment"
	KindSubmission   = "submission"
	KindQuizAttempt  = "quizattempt"
	KindSubscription = "subscription"
	KindActivity     = "activity"
)

var quizQuestionFields = []FieldSpec{
	{Name: "question", Type: TypeString, Required: true},
	{Name: "options", Type: TypeStringList, Required: true},
	{Name: "correct_index", Type: TypeInt, Required: true},
}

var registry = map[string][]FieldSpec{
	KindUser: {
		{Name: "name", Type: TypeString, Required: true},
		{Name: "email", Type: TypeString, Required: true},
		{Name: "role", Type: TypeString, Default: "student", Allowed: []string{"teacher", "student", "admin"}},
		{Name: "avatar_url", Type: TypeString, Nullable: true},
		{Name: "is_active", Type: TypeBool, Default: true},
	},
	KindCourse: {
		{Name: "title", Type: TypeString, Required: true},
		{Name: "description", Type: TypeString, Nullable: true, Default: ""},
		{Name: "teacher_id", Type: TypeString, Required: true},
		{Name: "category", Type: TypeString, Nullable: true},
		{Name: "tags", Type: TypeStringList, Default: []string{}},
		{Name: "thumbnail_url", Type: TypeString, Nullable: true},
		{Name: "level", Type: TypeString, Default: "beginner", Allowed: []string{"beginner", "intermediate", "advanced"}},
		{Name: "is_published", Type: TypeBool, Default: false},
	},
	KindLesson: {
		{Name: "course_id", Type: TypeString, Required: true},
		{Name: "title", Type: TypeString, Required: true},
		{Name: "video_url", Type: TypeString, Nullable: true},
		{Name: "content", Type: TypeString, Nullable: true},
		{Name: "order", Type: TypeInt, Default: 0},
		{Name: "duration_minutes", Type: TypeInt, Nullable: true},
	},
	KindAssignment: {
		{Name: "course_id", Type: TypeString, Required: true},
		{Name: "title", Type: TypeString, Required: true},
		{Name: "instructions", Type: TypeString, Required: true},
		{Name: "due_date", Type: TypeTimestamp, Nullable: true},
		{Name: "max_points", Type: TypeInt, Default: 100},
	},
	KindQuiz: {
		{Name: "course_id", Type: TypeString, Required: true},
		{Name: "title", Type: TypeString, Required: true},
		{Name: "questions", Type: TypeObjectList, Default: []interface{}{}, Fields: quizQuestionFields},
		{Name: "time_limit_minutes", Type: TypeInt, Nullable: true},
	},
	KindEnrollment: {
		{Name: "course_id", Type: TypeString, Required: true},
		{Name: "student_id", Type: TypeString, Required: true},
		{Name: "status", Type: TypeString, Default: "active", Allowed: []string{"active", "completed", "dropped"}},
		{Name: "progress_percent", Type: TypeFloat, Default: 0.0},
	},
	KindSubmission: {
		{Name: "assignment_id", Type: TypeString, Required: true},
		{Name: "student_id", Type: TypeString, Required: true},
		{Name: "content_url", Type: TypeString, Nullable: true},
		{Name: "content_text", Type: TypeString, Nullable: true},
		{Name: "grade", Type: TypeFloat, Nullable: true},
		{Name: "feedback", Type: TypeString, Nullable: true},
	},
	KindQuizAttempt: {
		{Name: "quiz_id", Type: TypeString, Required: true},
		{Name: "student_id", Type: TypeString, Required: true},
		{Name: "answers", Type: TypeIntList, Required: true},
		{Name: "score", Type: TypeFloat, Nullable: true},
	},
	KindSubscription: {
		{Name: "user_id", Type: TypeString, Required: true},
		{Name: "plan", Type: TypeString, Default: "free", Allowed: []string{"free", "pro", "team", "enterprise"}},
		{Name: "status", Type: TypeString, Default: "active", Allowed: []string{"active", "past_due", "canceled"}},
		{Name: "renews_at", Type: TypeTimestamp, Nullable: true},
	},
	KindActivity: {
		{Name: "user_id", Type: TypeString, Required: true},
		{Name: "action", Type: TypeString, Required: true},
		{Name: "resource_type", Type: TypeString, Required: true},
		{Name: "resource_id", Type: TypeString, Required: true},
		{Name: "metadata", Type: TypeMap, Default: map[string]interface{}{}},
	},
}

// Describe returns the ordered field specs for a known kind.
func Describe(kind string) ([]FieldSpec, error) {
	specs, ok := registry[kind]
	if !ok {
		return nil, &UnknownKindError{Kind: kind}
	}
	out := make([]FieldSpec, len(specs))
	copy(out, specs)
	return out, nil
}

// DescribeAll returns the full registry, keyed by kind name.
func DescribeAll() map[string][]FieldSpec {
	out := make(map[string][]FieldSpec, len(registry))
	for kind, specs := range registry {
		fields := make([]FieldSpec, len(specs))
		copy(fields, specs)
		out[kind] = fields
	}
	return out
}

// Kinds returns every declared kind name.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for kind := range registry {
		out = append(out, kind)
	}
	return out
}
