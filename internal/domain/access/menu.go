package access

// MenuItem is one entry of the navigation tree. Entries without Requires are always visible.
type MenuItem struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Path     string     `json:"path,omitempty"`
	Requires Capability `json:"-"`
	Children []MenuItem `json:"children,omitempty"`
}

var navigation = []MenuItem{
	{Key: "dashboard", Label: "Dashboard", Path: "/dashboard"},
	{Key: "patients", Label: "Patients", Path: "/patients", Requires: PatientsRead},
	{Key: "inventory", Label: "Inventory", Requires: InventoryRead, Children: []MenuItem{
		{Key: "inventory.items", Label: "Items", Path: "/inventory/items", Requires: InventoryRead},
		{Key: "inventory.receiving", Label: "Receiving", Path: "/inventory/receipts", Requires: InventoryWrite},
		{Key: "inventory.dispensing", Label: "Dispensing", Path: "/inventory/dispense", Requires: InventoryWrite},
		{Key: "inventory.adjustments", Label: "Stock Adjustments", Path: "/inventory/adjustments", Requires: InventoryAdjust},
		{Key: "inventory.transfers", Label: "Transfers", Path: "/inventory/transfers", Requires: InventoryWrite},
		{Key: "inventory.ledger", Label: "Transactions", Path: "/inventory/transactions", Requires: InventoryRead},
	}},
	{Key: "procurement", Label: "Procurement", Requires: ProcurementRead, Children: []MenuItem{
		{Key: "procurement.pr", Label: "Purchase Requests", Path: "/procurement/purchase-requests", Requires: ProcurementRead},
		{Key: "procurement.po", Label: "Purchase Orders", Path: "/procurement/purchase-orders", Requires: ProcurementRead},
		{Key: "procurement.wrr", Label: "Receiving Reports", Path: "/procurement/receiving-reports", Requires: ProcurementRead},
		{Key: "procurement.invoices", Label: "Invoices", Path: "/procurement/invoices", Requires: ProcurementRead},
	}},
	{Key: "reports", Label: "Reports", Path: "/reports", Requires: ReportsRead},
	{Key: "users", Label: "Users", Path: "/users", Requires: UsersManage},
}

// MenuFor returns the navigation tree visible to role.
// A parent whose children are all hidden is dropped.
func MenuFor(role string) []MenuItem {
	return filter(navigation, role)
}

func filter(items []MenuItem, role string) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, it := range items {
		if it.Requires != "" && !Has(role, it.Requires) {
			continue
		}
		if len(it.Children) > 0 {
			children := filter(it.Children, role)
			if len(children) == 0 {
				continue
			}
			it.Children = children
		}
		out = append(out, it)
	}
	return out
}
