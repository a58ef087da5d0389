package generation

import (
	"fmt"
	"strings"

	"invacc/internal/core/types"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/rules"
)

const noCostCenter = "ندارد"

// BuildPrompt renders the Persian instruction text for one generation request.
// Only active rules that match the request documents are included.
func BuildPrompt(req conversion.GenerationRequest) string {
	var b strings.Builder

	b.WriteString(mainInstruction(req))
	b.WriteString("\n\n**خلاصه اسناد:**\n")
	for i := range req.Documents {
		writeDocument(&b, &req.Documents[i], req.Warehouses)
	}

	b.WriteString("\n**قوانین حسابداری فعال (شابلون):**\n")
	b.WriteString("این قوانین اولویت بالایی دارند و بر قضاوت عمومی حسابداری مقدم هستند. لطفاً دقیقاً از آنها پیروی کن.\n")
	for _, r := range rules.Applicable(req.Documents, req.Rules) {
		writeRule(&b, &r, req.Warehouses)
	}

	b.WriteString("\n**دستورالعمل‌ها:**\n")
	fmt.Fprintf(&b, "- جمع ستون بدهکار و جمع ستون بستانکار هر دو باید دقیقاً برابر %s ریال باشند.\n", types.FormatMoney(req.Amount))
	if req.Date != "" {
		fmt.Fprintf(&b, "- تاریخ سند حسابداری: %s\n", req.Date)
	}
	if req.Description != "" {
		fmt.Fprintf(&b, "- شرح کلی سند حسابداری: '%s'\n", req.Description)
	}
	b.WriteString("- در توضیحات هر آرتیکل (فیلد description)، شماره سند(های) انبار مربوطه را ذکر کن.\n")
	b.WriteString("- مراکز هزینه هر آرتیکل را به ترتیب در فیلدهای costCenter1، costCenter2 و costCenter3 قرار بده.\n")
	b.WriteString("- فیلدهای totalDebit و totalCredit باید با جمع ستون‌های آرتیکل‌ها برابر باشند.\n")
	b.WriteString("\nلطفا خروجی را فقط در فرمت JSON و مطابق با اسکیمای ارائه شده برگردان.\n")

	return b.String()
}

func mainInstruction(req conversion.GenerationRequest) string {
	if req.Mode == conversion.ModeConsolidated && len(req.Documents) > 1 {
		return fmt.Sprintf("بر اساس %d سند انبار زیر، یک سند حسابداری دوبل استاندارد تجمیعی ایجاد کن.", len(req.Documents))
	}
	return "بر اساس سند انبار زیر، یک سند حسابداری دوبل استاندارد ایجاد کن."
}

func writeDocument(b *strings.Builder, d *inventory.Document, warehouses []catalogs.Warehouse) {
	name := catalogs.WarehouseName(warehouses, d.WarehouseID)
	if name == d.WarehouseID.String() && d.WarehouseName != "" {
		name = d.WarehouseName
	}
	docType := d.DocTypeDescription
	if docType == "" {
		docType = d.Kind.Label()
	}

	b.WriteString("--- سند انبار ---\n")
	fmt.Fprintf(b, "نوع: %s - %s (%s)\n", d.Kind.Label(), docType, name)
	fmt.Fprintf(b, "شماره: %s\n", d.DocNo)
	fmt.Fprintf(b, "تاریخ: %s\n", d.Date)
	fmt.Fprintf(b, "مبلغ کل: %s ریال\n", types.FormatMoney(d.TotalAmount))
	fmt.Fprintf(b, "مانده قابل تبدیل: %s ریال\n", types.FormatMoney(d.Remaining()))
}

func writeRule(b *strings.Builder, r *rules.AccountingRule, warehouses []catalogs.Warehouse) {
	name := catalogs.WarehouseName(warehouses, r.WarehouseID)

	fmt.Fprintf(b, "- برای سند با کد نوع '%s' از %s:\n", r.DocTypeCode, name)
	for _, a := range r.Actions {
		fmt.Fprintf(b, "    - %s: حساب با کد '%s' (مراکز: %s).", a.TransactionType.Label(), a.Account, costCenters(a.CostCenters))
		if a.LineDescription != "" {
			fmt.Fprintf(b, " شرح آرتیکل: '%s'.", a.LineDescription)
		}
		b.WriteString("\n")
	}
	if r.DocDescription != "" {
		fmt.Fprintf(b, "    - شرح کلی سند: '%s'.\n", r.DocDescription)
	}
}

func costCenters(codes []types.Code) string {
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		if !c.IsEmpty() {
			parts = append(parts, c.String())
		}
	}
	if len(parts) == 0 {
		return noCostCenter
	}
	return strings.Join(parts, " - ")
}
