package lookup

import (
	"fmt"
	"strings"

	"go_vocab_quiz/internal/model"
)

// basicDictionary は翻訳APIが使えないときの簡易英越辞書です
var basicDictionary = map[string]string{
	"hello": "xin chào", "goodbye": "tạm biệt", "thank": "cảm ơn", "please": "làm ơn",
	"sorry": "xin lỗi", "yes": "có", "no": "không", "good": "tốt", "bad": "xấu",
	"big": "lớn", "small": "nhỏ", "hot": "nóng", "cold": "lạnh", "fast": "nhanh",
	"slow": "chậm", "happy": "vui", "sad": "buồn", "love": "yêu", "hate": "ghét",
	"eat": "ăn", "drink": "uống", "sleep": "ngủ", "work": "làm việc", "study": "học",
	"play": "chơi", "run": "chạy", "walk": "đi bộ", "read": "đọc", "write": "viết",
	"listen": "nghe", "speak": "nói", "see": "thấy", "hear": "nghe", "think": "nghĩ",
	"know": "biết", "understand": "hiểu", "learn": "học", "teach": "dạy", "help": "giúp đỡ",
	"come": "đến", "go": "đi", "stay": "ở lại", "leave": "rời khỏi", "find": "tìm thấy",
	"lose": "mất", "give": "đưa", "take": "lấy", "buy": "mua", "sell": "bán",
	"make": "làm", "do": "làm", "have": "có", "be": "là", "get": "có được",
	"want": "muốn", "need": "cần", "like": "thích", "house": "nhà", "car": "xe hơi",
	"book": "sách", "phone": "điện thoại", "computer": "máy tính", "water": "nước",
	"food": "thức ăn", "money": "tiền", "time": "thời gian", "day": "ngày", "night": "đêm",
	"morning": "buổi sáng", "afternoon": "buổi chiều", "evening": "buổi tối", "week": "tuần",
	"month": "tháng", "year": "năm", "today": "hôm nay", "yesterday": "hôm qua",
	"tomorrow": "ngày mai", "school": "trường học", "hospital": "bệnh viện",
	"store": "cửa hàng", "restaurant": "nhà hàng", "park": "công viên", "city": "thành phố",
	"country": "đất nước", "world": "thế giới", "family": "gia đình", "friend": "bạn",
	"mother": "mẹ", "father": "bố", "brother": "anh/em trai", "sister": "chị/em gái",
	"child": "trẻ em", "man": "đàn ông", "woman": "phụ nữ", "person": "người",
	"people": "mọi người",
}

// BasicTranslation は簡易辞書で訳します。辞書にない語は単語そのものを返します
func BasicTranslation(word string) model.Translation {
	if vi, ok := basicDictionary[strings.ToLower(strings.TrimSpace(word))]; ok {
		return model.Translation{
			Vietnamese: vi,
			Definitions: []model.Definition{{
				PartOfSpeech: "unknown",
				Definition:   fmt.Sprintf("Common translation for %q", word),
			}},
			Success: true,
		}
	}
	return model.Translation{
		Vietnamese:  word,
		Definitions: []model.Definition{},
		Success:     true,
	}
}
