package bills_test

import (
	"context"

	"github.com/billed-app/billed-api/internal/domain/entity"
	"github.com/billed-app/billed-api/internal/domain/repository"
)

// fakeStore dobla el store remoto con funciones intercambiables por test,
// el equivalente del mockStore de la suite original. Cuenta las llamadas y
// registra el orden para poder afirmar "exactamente un create seguido de
// exactamente un update".
type fakeStore struct {
	listFn   func(ctx context.Context, email string) ([]entity.Bill, error)
	createFn func(ctx context.Context, in repository.CreateBillInput) (*repository.CreateBillResult, error)
	updateFn func(ctx context.Context, id string, bill entity.Bill) (*entity.Bill, error)
	getFn    func(ctx context.Context, id string) (*entity.Bill, error)

	createCalls int
	updateCalls int
	callOrder   []string

	lastCreateInput repository.CreateBillInput
	lastUpdateID    string
	lastUpdateBill  entity.Bill
}

var _ repository.BillStore = (*fakeStore)(nil)

func (f *fakeStore) List(ctx context.Context, email string) ([]entity.Bill, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, email)
}

func (f *fakeStore) Create(ctx context.Context, in repository.CreateBillInput) (*repository.CreateBillResult, error) {
	f.createCalls++
	f.callOrder = append(f.callOrder, "create")
	f.lastCreateInput = in
	if f.createFn == nil {
		return &repository.CreateBillResult{
			ID:       "47qAXb6fIm2zOKkLzMro",
			FileURL:  "https://localhost:3456/images/test.jpg",
			FileName: in.FileName,
		}, nil
	}
	return f.createFn(ctx, in)
}

func (f *fakeStore) Update(ctx context.Context, id string, bill entity.Bill) (*entity.Bill, error) {
	f.updateCalls++
	f.callOrder = append(f.callOrder, "update")
	f.lastUpdateID = id
	f.lastUpdateBill = bill
	if f.updateFn == nil {
		return &bill, nil
	}
	return f.updateFn(ctx, id, bill)
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	if f.getFn == nil {
		return nil, nil
	}
	return f.getFn(ctx, id)
}
