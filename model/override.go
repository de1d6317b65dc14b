package model

// MappingOverride is one task's fully resolved initial placement: its PE
// assignment (default_mapping with mapping_list entries applied) and
// whether static_list pins it. input.Parse returns one of these per task,
// in task-id order, ready to apply directly onto a freshly constructed
// Mapping.
type MappingOverride struct {
	TaskID int
	PE     int
	Static bool
}
