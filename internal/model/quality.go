package model

import "fmt"

// QualityOption is one selectable entry of a quality list.
type QualityOption struct {
	Index     int // 0-based position into the category's descriptor list
	Label     string
	Container string
}

// QualityList is the ordered, index-addressable view of one stream category.
// Indexes are stable for the lifetime of one resolved manifest.
type QualityList []QualityOption

// Labels returns the display labels in list order.
func (l QualityList) Labels() []string {
	labels := make([]string, len(l))
	for i, q := range l {
		labels[i] = q.Label
	}
	return labels
}

// BuildQualityList formats descriptors of one category into a quality list.
// Descriptors keep the provider's manifest order; the 1-based number in the
// label is cosmetic, selection always resolves through the 0-based index.
func BuildQualityList(descriptors []StreamDescriptor) QualityList {
	list := make(QualityList, 0, len(descriptors))
	for i, d := range descriptors {
		var label string
		if d.Category == CategoryAudio {
			label = fmt.Sprintf("%d : %d bps - %s", i+1, d.Bitrate, d.Container)
		} else {
			label = fmt.Sprintf("%d : %s px - %d bps - %s", i+1, d.Resolution, d.Bitrate, d.Container)
		}
		list = append(list, QualityOption{Index: i, Label: label, Container: d.Container})
	}
	return list
}
