package catalogrepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const commandPrefix = "O-BTN."

var commandActions = map[string]barcode.Action{
	"validate": barcode.ActionValidate,
	"pack":     barcode.ActionPutInPack,
	"discard":  barcode.ActionDiscard,
}

// weightPrefix starts EAN-13 codes whose digits 8 to 12 encode a weight as NN.DDD
// in the product's unit. The product itself carries the code with those digits zeroed.
const weightPrefix = "21"

// packageNamePattern matches the names NextPackageName hands out.
var packageNamePattern = regexp.MustCompile(`^PACK[0-9]{7}$`)

// Parse looks raw up in every table that holds scannable codes and reports all
// matches; the caller decides which kind dominates. Lot lookups are narrowed to the
// product in filters when it is set.
func (r *GormCatalogRepository) Parse(ctx context.Context, raw string, filters barcode.Filters) (barcode.Data, error) {
	data := barcode.Data{Barcode: raw}

	if action, ok := strings.CutPrefix(raw, commandPrefix); ok {
		a, known := commandActions[action]
		if !known {
			return barcode.Data{}, errs.NewParseError(raw, fmt.Sprintf("unknown command %q", action))
		}
		data.Action = a
		data.Match = true
		return data, nil
	}

	if isWeightCode(raw) {
		if err := r.parseWeight(ctx, raw, &data); err != nil {
			return barcode.Data{}, err
		}
		if data.Match {
			return data, nil
		}
	}

	lookups := []func(context.Context, string, barcode.Filters, *barcode.Data) error{
		r.matchProduct,
		r.matchPackaging,
		r.matchLot,
		r.matchPackage,
		r.matchPackageType,
		r.matchLocation,
	}
	for _, lookup := range lookups {
		if err := lookup(ctx, raw, filters, &data); err != nil {
			return barcode.Data{}, fmt.Errorf("parse %q: %w", raw, err)
		}
	}

	// A package name nobody created yet names the package to put in pack.
	if data.Package == nil && packageNamePattern.MatchString(raw) {
		data.PackageName = raw
		data.Match = true
	}
	return data, nil
}

// GetByBarcode resolves raw as one kind of record, ignoring filters. It returns an
// ObjectNotFoundError when no record of that kind carries the code.
func (r *GormCatalogRepository) GetByBarcode(ctx context.Context, raw string, kind barcode.Kind) (barcode.Data, error) {
	var lookup func(context.Context, string, barcode.Filters, *barcode.Data) error
	switch kind {
	case barcode.KindProduct:
		lookup = r.matchProduct
	case barcode.KindLot:
		lookup = r.matchLot
	case barcode.KindPackage:
		lookup = r.matchPackage
	case barcode.KindPackageType:
		lookup = r.matchPackageType
	case barcode.KindLocation:
		lookup = r.matchLocation
	default:
		return barcode.Data{}, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%s codes cannot be looked up", kind))
	}

	data := barcode.Data{Barcode: raw}
	if err := lookup(ctx, raw, barcode.Filters{}, &data); err != nil {
		return barcode.Data{}, err
	}
	if !data.Match {
		return barcode.Data{}, errs.NewObjectNotFoundError(kind.String(), raw)
	}
	return data, nil
}

func (r *GormCatalogRepository) parseWeight(ctx context.Context, raw string, data *barcode.Data) error {
	if !validCheckDigit(raw) {
		return errs.NewParseError(raw, "the check digit of the weight code is wrong")
	}
	weight, err := kernel.QuantityFromString(raw[7:9] + "." + raw[9:12])
	if err != nil {
		return errs.NewParseErrorWithCause(raw, "the weight cannot be read", err)
	}

	base := raw[:7] + "00000"
	base += string(checkDigit(base))

	var dto ProductDTO
	err = r.db.WithContext(ctx).Preload("UoM").Where("barcode = ?", base).First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	product, err := ProductToDomain(dto)
	if err != nil {
		return err
	}
	data.Product = product
	data.Weight = &weight
	data.Match = true
	return nil
}

func (r *GormCatalogRepository) matchProduct(ctx context.Context, raw string, _ barcode.Filters, data *barcode.Data) error {
	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).
		Preload("UoM").
		Where("barcode = ? OR ? = ANY(alt_barcodes)", raw, raw).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "barcode = ? DESC, name",
			Vars:               []any{raw},
			WithoutParentheses: true,
		}}).
		Limit(1).
		Find(&dtos).Error; err != nil {
		return err
	}
	if len(dtos) == 0 {
		return nil
	}
	product, err := ProductToDomain(dtos[0])
	if err != nil {
		return err
	}
	data.Product = product
	data.Match = true
	return nil
}

func (r *GormCatalogRepository) matchPackaging(ctx context.Context, raw string, _ barcode.Filters, data *barcode.Data) error {
	var dtos []PackagingDTO
	if err := r.db.WithContext(ctx).Where("barcode = ?", raw).Limit(1).Find(&dtos).Error; err != nil {
		return err
	}
	if len(dtos) == 0 {
		return nil
	}
	packaging, err := packagingToDomain(dtos[0])
	if err != nil {
		return err
	}
	data.Packaging = packaging
	data.Match = true
	return nil
}

func (r *GormCatalogRepository) matchLot(ctx context.Context, raw string, filters barcode.Filters, data *barcode.Data) error {
	query := r.db.WithContext(ctx).Where("name = ?", raw)
	if filters.LotProductID != nil {
		query = query.Where("product_id = ?", filters.LotProductID.Bytes())
	}

	var dtos []LotDTO
	if err := query.Order("id").Limit(1).Find(&dtos).Error; err != nil {
		return err
	}
	if len(dtos) == 0 {
		return nil
	}
	lot, err := LotToDomain(dtos[0])
	if err != nil {
		return err
	}
	data.Lot = lot
	data.Match = true
	return nil
}

func (r *GormCatalogRepository) matchPackage(ctx context.Context, raw string, _ barcode.Filters, data *barcode.Data) error {
	var dtos []PackageDTO
	if err := r.db.WithContext(ctx).Where("name = ?", raw).Limit(1).Find(&dtos).Error; err != nil {
		return err
	}
	if len(dtos) == 0 {
		return nil
	}
	pkg, err := r.packageToDomain(ctx, dtos[0])
	if err != nil {
		return err
	}
	data.Package = pkg
	data.Match = true
	return nil
}

func (r *GormCatalogRepository) matchPackageType(ctx context.Context, raw string, _ barcode.Filters, data *barcode.Data) error {
	var dtos []PackageTypeDTO
	if err := r.db.WithContext(ctx).Where("barcode = ?", raw).Limit(1).Find(&dtos).Error; err != nil {
		return err
	}
	if len(dtos) == 0 {
		return nil
	}
	packageType, err := packageTypeToDomain(dtos[0])
	if err != nil {
		return err
	}
	data.PackageType = packageType
	data.Match = true
	return nil
}

func (r *GormCatalogRepository) matchLocation(ctx context.Context, raw string, _ barcode.Filters, data *barcode.Data) error {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Where("barcode = ?", raw).Limit(1).Find(&dtos).Error; err != nil {
		return err
	}
	if len(dtos) == 0 {
		return nil
	}
	location, err := locationToDomain(dtos[0])
	if err != nil {
		return err
	}
	data.Location = location
	data.Match = true
	return nil
}

func isWeightCode(raw string) bool {
	if len(raw) != 13 || !strings.HasPrefix(raw, weightPrefix) {
		return false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// checkDigit computes the EAN-13 check digit of the first twelve digits of code.
func checkDigit(code string) byte {
	sum := 0
	for i := range 12 {
		d := int(code[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}

func validCheckDigit(code string) bool {
	return checkDigit(code) == code[12]
}
