package validation

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Ограничения полей рецепта.
const (
	RecipeNameMax = 256
)

var (
	nameRules        = fmt.Sprintf("max=%d", RecipeNameMax)
	cookingTimeRules = fmt.Sprintf("min=%d,max=%d", models.MinAmount, models.MaxAmount)
)

// Recipe проверяет тело запроса на создание (partial=false) или частичное
// обновление (partial=true) рецепта и возвращает данные для записи.
// Существование тегов и ингредиентов проверяет сервис.
func (v *Validator) Recipe(in models.RecipeInput, partial bool) (models.RecipeWrite, Errors) {
	errs := Errors{}
	out := models.RecipeWrite{}

	if in.Ingredients == nil {
		if !partial {
			errs.Add("ingredients", MsgRequired)
		}
	} else {
		out.SetIngreds = true
		out.Ingredients = *in.Ingredients
		v.checkIngredients(errs, *in.Ingredients)
	}

	if in.Tags == nil {
		if !partial {
			errs.Add("tags", MsgRequired)
		}
	} else {
		out.SetTags = true
		out.Tags = *in.Tags
		checkTags(errs, *in.Tags)
	}

	switch {
	case in.Image == nil:
		if !partial {
			errs.Add("image", MsgRequired)
		}
	case strings.TrimSpace(*in.Image) == "":
		errs.Add("image", MsgImageEmpty)
	default:
		out.Image = in.Image
	}

	if in.Name == nil {
		if !partial {
			errs.Add("name", MsgRequired)
		}
	} else {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			errs.Add("name", MsgBlank)
		} else if v.Var(errs, "name", name, nameRules) {
			out.Name = &name
		}
	}

	if in.Text == nil {
		if !partial {
			errs.Add("text", MsgRequired)
		}
	} else if strings.TrimSpace(*in.Text) == "" {
		errs.Add("text", MsgBlank)
	} else {
		out.Text = in.Text
	}

	if in.CookingTime == nil {
		if !partial {
			errs.Add("cooking_time", MsgRequired)
		}
	} else if v.Var(errs, "cooking_time", *in.CookingTime, cookingTimeRules) {
		out.CookingTime = in.CookingTime
	}

	return out, errs
}

func (v *Validator) checkIngredients(errs Errors, items []models.IngredientAmount) {
	if len(items) == 0 {
		errs.Add("ingredients", MsgEmptyList)
		return
	}
	seen := make(map[int64]struct{}, len(items))
	duplicate := false
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			duplicate = true
		}
		seen[item.ID] = struct{}{}
		for _, msgs := range v.Struct(item) {
			for _, msg := range msgs {
				errs.Add("ingredients", msg)
			}
		}
	}
	if duplicate {
		errs.Add("ingredients", MsgDuplicateIngredients)
	}
}

func checkTags(errs Errors, ids []int64) {
	if len(ids) == 0 {
		errs.Add("tags", MsgEmptyList)
		return
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			errs.Add("tags", MsgDuplicateTags)
			return
		}
		seen[id] = struct{}{}
	}
}
