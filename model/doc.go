// Package model provides the input records consumed by the pagination engine
// and the physical page geometry it lays them out against.
//
// # Report Content
//
// A [Report] is an ordered list of [Section] values supplied by the report
// editing layer:
//
//	report := model.Report{
//	    ID: "r-1042",
//	    Sections: []model.Section{
//	        {ID: "1", Key: "report_details", Title: "Details"},
//	        {ID: "2", Key: "roof", Title: "Roof", Findings: findings},
//	    },
//	}
//
// Each section carries free-form info fields and a list of [Finding] values,
// each with optional narrative and recommendation text and attached [Media].
// The section keyed [MetadataSectionKey] holds report metadata and is
// excluded from pagination by [PaginatedSections].
//
// These types are read-only to the rest of the module; nothing retains or
// mutates them.
//
// # Page Geometry
//
// Lengths are CSS pixels (96 per inch). [PageSpec] combines a [PageSize],
// an [Orientation] and a [Margin]:
//
//	spec := model.PageSpec{Size: model.A4, Margin: model.UniformMargin(40)}
//	budget := spec.AvailableHeight()
//
// [DefaultPageSpec] is US Letter, portrait, 30px margins, giving a
// printable height of 996px.
package model
