// Package seed provides helpers to create the built-in question corpus and
// demo data for the application database. The factory helpers are intended
// for development and testing only.
package seed

import (
	"log"

	"sanxing/internal/models"

	"gorm.io/gorm"
)

// BuiltInQuestion is a permanent system prompt. Built-in questions have no
// author and are readable by everyone.
type BuiltInQuestion struct {
	QuestionText   string
	Tag            string
	InspiringWords string
}

// BuiltInQuestions defines the permanent reflection prompts.
var BuiltInQuestions = []BuiltInQuestion{
	{
		QuestionText:   "你如何理解幸福？",
		Tag:            "幸福/人生",
		InspiringWords: "描述你心中幸福的模样，不一定要宏大，也可以是细小的瞬间。",
	},
	{
		QuestionText:   "自由和责任，哪个更重要？",
		Tag:            "自由/责任",
		InspiringWords: "思考一下自由和责任之间的平衡，你更倾向于哪一方？",
	},
	{
		QuestionText:   "如果一切都是命运安排的，我们还需要努力吗？",
		Tag:            "命运/努力",
		InspiringWords: "假设命运存在，你会如何看待自己的努力？",
	},
	{
		QuestionText:   "人类追求真理是否可能？",
		Tag:            "真理/认识论",
		InspiringWords: "谈谈你对真理的理解，人类是否有可能接近它？",
	},
	{
		QuestionText:   "孤独是一种力量还是一种缺陷？",
		Tag:            "孤独/心理",
		InspiringWords: "结合你的经验，孤独带给你的是成长还是困扰？",
	},
	{
		QuestionText:   "如果没有死亡，人生还有意义吗？",
		Tag:            "死亡/意义",
		InspiringWords: "试想一个没有死亡的世界，你认为生活会失去什么？",
	},
	{
		QuestionText:   "正义和善良，是否永远一致？",
		Tag:            "正义/善良",
		InspiringWords: "举例说明你是否遇到过正义和善良不一致的情况。",
	},
	{
		QuestionText:   "你认为痛苦对成长有必要吗？",
		Tag:            "痛苦/成长",
		InspiringWords: "想一想你的人生经历，痛苦是否让你有所成长？",
	},
	{
		QuestionText:   "科技让我们更自由还是更依赖？",
		Tag:            "科技/自由",
		InspiringWords: "观察你生活中的科技应用，它们让你更自由还是更受束缚？",
	},
	{
		QuestionText:   "美好生活的标准是什么？",
		Tag:            "人生/美好生活",
		InspiringWords: "描述一下你理想中的美好生活，它需要具备哪些元素？",
	},
}

// Questions seeds the built-in prompts. It is idempotent: prompts are keyed
// by their text, and existing rows keep their generated IDs so answers and
// folder memberships never dangle across reseeds.
func Questions(db *gorm.DB) error {
	inserted := 0
	for _, item := range BuiltInQuestions {
		err := db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Question{}).
				Where("question_text = ? AND author_id IS NULL", item.QuestionText).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			question := models.Question{
				QuestionText:   item.QuestionText,
				Tag:            item.Tag,
				InspiringWords: item.InspiringWords,
				IsPublic:       true,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			inserted++
			return nil
		})
		if err != nil {
			return err
		}
	}

	log.Printf("Seeded built-in questions: %d new, %d total", inserted, len(BuiltInQuestions))
	return nil
}
