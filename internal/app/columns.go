package app

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/sahilm/fuzzy"

	"github.com/renato0307/ponte/internal/engine"
	"github.com/renato0307/ponte/internal/k8s"
)

// column describes one table column for a resource kind. Cells are read
// from the named struct field via reflection; a row function overrides
// that for derived cells like "ready/total".
type column struct {
	title string
	width int // 0 = dynamic (splits the remaining space)
	field string
	row   func(item any) string
}

// kindColumns drives the table layout per kind.
var kindColumns = map[engine.Kind][]column{
	engine.KindDeployments: {
		{title: "Namespace", width: 20, field: "Namespace"},
		{title: "Name", width: 0, field: "Name"},
		{title: "Ready", width: 8, row: func(item any) string {
			d := item.(k8s.DeploymentInfo)
			return fmt.Sprintf("%d/%d", d.Ready, d.Replicas)
		}},
		{title: "Up-to-date", width: 11, field: "Updated"},
		{title: "Available", width: 10, field: "Available"},
		{title: "Age", width: 8, field: "Age"},
	},
	engine.KindPods: {
		{title: "Namespace", width: 20, field: "Namespace"},
		{title: "Name", width: 0, field: "Name"},
		{title: "Ready", width: 7, field: "Ready"},
		{title: "Status", width: 16, field: "Status"},
		{title: "Restarts", width: 9, field: "Restarts"},
		{title: "Age", width: 8, field: "Age"},
		{title: "Node", width: 20, field: "Node"},
		{title: "IP", width: 15, field: "IP"},
	},
	engine.KindServices: {
		{title: "Namespace", width: 20, field: "Namespace"},
		{title: "Name", width: 0, field: "Name"},
		{title: "Type", width: 12, field: "Type"},
		{title: "Cluster-IP", width: 16, field: "ClusterIP"},
		{title: "External-IP", width: 18, field: "ExternalIP"},
		{title: "Ports", width: 20, row: func(item any) string {
			return strings.Join(item.(k8s.ServiceInfo).Ports, ", ")
		}},
		{title: "Age", width: 8, field: "Age"},
	},
	engine.KindIngresses: {
		{title: "Namespace", width: 20, field: "Namespace"},
		{title: "Name", width: 0, field: "Name"},
		{title: "Hosts", width: 30, row: func(item any) string {
			return strings.Join(item.(k8s.IngressInfo).Hosts, ", ")
		}},
		{title: "Paths", width: 24, row: func(item any) string {
			return strings.Join(item.(k8s.IngressInfo).Paths, ", ")
		}},
		{title: "Age", width: 8, field: "Age"},
	},
	engine.KindConfigMaps: {
		{title: "Namespace", width: 20, field: "Namespace"},
		{title: "Name", width: 0, field: "Name"},
		{title: "Data", width: 6, field: "DataCount"},
		{title: "Age", width: 8, field: "Age"},
	},
	engine.KindSecrets: {
		{title: "Namespace", width: 20, field: "Namespace"},
		{title: "Name", width: 0, field: "Name"},
		{title: "Type", width: 28, field: "Type"},
		{title: "Data", width: 6, field: "DataCount"},
		{title: "Age", width: 8, field: "Age"},
	},
	engine.KindJobs: {
		{title: "Namespace", width: 20, field: "Namespace"},
		{title: "Name", width: 0, field: "Name"},
		{title: "Completions", width: 12, field: "Completions"},
		{title: "Duration", width: 10, field: "Duration"},
		{title: "Status", width: 11, field: "Status"},
		{title: "Age", width: 8, field: "Age"},
		{title: "Owner", width: 20, field: "Owner"},
	},
	engine.KindCronJobs: {
		{title: "Namespace", width: 20, field: "Namespace"},
		{title: "Name", width: 0, field: "Name"},
		{title: "Schedule", width: 15, field: "Schedule"},
		{title: "Suspend", width: 8, field: "Suspend"},
		{title: "Active", width: 7, field: "Active"},
		{title: "Last Schedule", width: 14, field: "LastSchedule"},
		{title: "Age", width: 8, field: "Age"},
	},
}

// searchFields lists the struct fields the fuzzy filter matches against.
var searchFields = map[engine.Kind][]string{
	engine.KindDeployments: {"Namespace", "Name"},
	engine.KindPods:        {"Namespace", "Name", "Status", "Node", "IP"},
	engine.KindServices:    {"Namespace", "Name", "Type", "ClusterIP"},
	engine.KindIngresses:   {"Namespace", "Name"},
	engine.KindConfigMaps:  {"Namespace", "Name"},
	engine.KindSecrets:     {"Namespace", "Name", "Type"},
	engine.KindJobs:        {"Namespace", "Name", "Status", "Owner"},
	engine.KindCronJobs:    {"Namespace", "Name", "Schedule"},
}

// tableColumns builds the bubbles columns for a kind, splitting the width
// left over by the fixed columns evenly across the dynamic ones.
func tableColumns(kind engine.Kind, width int) []table.Column {
	cols := kindColumns[kind]

	fixedTotal := 0
	dynamicCount := 0
	for _, col := range cols {
		if col.width > 0 {
			fixedTotal += col.width
		} else {
			dynamicCount++
		}
	}

	// Account for cell padding: numColumns * 2
	dynamicWidth := 0
	if dynamicCount > 0 {
		dynamicWidth = (width - fixedTotal - len(cols)*2) / dynamicCount
		if dynamicWidth < 20 {
			dynamicWidth = 20
		}
	}

	out := make([]table.Column, len(cols))
	for i, col := range cols {
		w := col.width
		if w == 0 {
			w = dynamicWidth
		}
		out[i] = table.Column{Title: col.title, Width: w}
	}
	return out
}

// tableRows renders items into table rows using the kind's columns.
func tableRows(kind engine.Kind, items []any) []table.Row {
	cols := kindColumns[kind]
	rows := make([]table.Row, len(items))
	for i, item := range items {
		row := make(table.Row, len(cols))
		for j, col := range cols {
			if col.row != nil {
				row[j] = col.row(item)
			} else {
				row[j] = fmt.Sprint(getFieldValue(item, col.field))
			}
		}
		rows[i] = row
	}
	return rows
}

// filterItems applies the fuzzy filter over the kind's search fields. A
// leading "!" negates the match set.
func filterItems(kind engine.Kind, items []any, filter string) []any {
	if filter == "" {
		return items
	}

	fields := searchFields[kind]
	searchStrings := make([]string, len(items))
	for i, item := range items {
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, fmt.Sprint(getFieldValue(item, field)))
		}
		searchStrings[i] = strings.ToLower(strings.Join(parts, " "))
	}

	if pattern := strings.TrimPrefix(filter, "!"); pattern != filter {
		matches := fuzzy.Find(strings.ToLower(pattern), searchStrings)
		matchSet := make(map[int]bool, len(matches))
		for _, m := range matches {
			matchSet[m.Index] = true
		}

		kept := make([]any, 0, len(items))
		for i, item := range items {
			if !matchSet[i] {
				kept = append(kept, item)
			}
		}
		return kept
	}

	matches := fuzzy.Find(strings.ToLower(filter), searchStrings)
	kept := make([]any, len(matches))
	for i, m := range matches {
		kept[i] = items[m.Index]
	}
	return kept
}

// getFieldValue extracts a struct field by name via reflection.
func getFieldValue(item any, fieldName string) any {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	field := v.FieldByName(fieldName)
	if !field.IsValid() {
		return ""
	}

	return field.Interface()
}

// resourceKey identifies a row across rebuilds (namespace/name).
func resourceKey(item any) string {
	namespace := fmt.Sprint(getFieldValue(item, "Namespace"))
	name := fmt.Sprint(getFieldValue(item, "Name"))
	return namespace + "/" + name
}
