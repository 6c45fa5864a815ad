package services

import "github.com/vnanh/lotrinh-backend/models"

// KnowledgeEntry là mức thành thạo của một subtopic, tra theo label.
type KnowledgeEntry struct {
	MasteryScore int
	Status       string
}

// OverlayProgress gắn tiến độ học vào cây lộ trình lúc đọc. Hàm thuần:
// trả về cây mới, không đụng vào cây input. Node không có trong map nhận
// mặc định 0/novice; map thiếu entry là trường hợp bình thường.
func OverlayProgress(nodes []RoadmapNode, progress map[string]KnowledgeEntry) []RoadmapNode {
	if nodes == nil {
		return nil
	}
	out := make([]RoadmapNode, len(nodes))
	for i, node := range nodes {
		decorated := node
		if entry, ok := progress[node.Label]; ok {
			decorated.MasteryScore = entry.MasteryScore
			decorated.Status = entry.Status
		} else {
			decorated.MasteryScore = 0
			decorated.Status = models.StatusNovice
		}
		decorated.Children = OverlayProgress(node.Children, progress)
		out[i] = decorated
	}
	return out
}
