package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/profilesync/internal/filex"
	"github.com/dmitrijs2005/profilesync/internal/flagx"
	"github.com/dmitrijs2005/profilesync/internal/netx"
	pb "github.com/dmitrijs2005/profilesync/internal/proto"
	"github.com/dmitrijs2005/profilesync/internal/server/auth"
)

// newFlagSet returns a FlagSet together with the subset of args naming
// its flags; global flags are left to the config loader.
func newFlagSet(cmd string, args []string, names ...string) (*flag.FlagSet, []string) {
	allowed := make([]string, len(names))
	for i, n := range names {
		allowed[i] = "-" + n
	}
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs, flagx.FilterArgs(args, allowed)
}

func (a *App) token(args []string) error {
	fs, args := newFlagSet("token", args, "owner", "email")
	owner := fs.String("owner", "", "owner id")
	email := fs.String("email", "", "email")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *owner == "" {
		return fmt.Errorf("%w: -owner is required", ErrUsage)
	}

	tok, err := auth.GenerateToken(auth.Identity{OwnerID: *owner, Email: *email}, []byte(a.config.SecretKey), a.config.TokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, tok)
	return nil
}

func (a *App) create(ctx context.Context, args []string) error {
	fs, args := newFlagSet("create", args, "first", "last", "address", "profession", "age", "image")
	fields := &pb.ProfileFields{}
	fs.StringVar(&fields.FirstName, "first", "", "first name")
	fs.StringVar(&fields.LastName, "last", "", "last name")
	fs.StringVar(&fields.Address, "address", "", "address")
	fs.StringVar(&fields.Profession, "profession", "", "profession")
	fs.StringVar(&fields.Age, "age", "", "age")
	imagePath := fs.String("image", "", "path to the profile image")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	var image *pb.Image
	if *imagePath != "" {
		var err error
		if image, err = readImage(*imagePath); err != nil {
			return err
		}
	}

	p, err := a.client.CreateProfile(ctx, fields, image, a.printProgress)
	if err != nil {
		return err
	}

	a.printProfile(p)
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	fs, args := newFlagSet("get", args, "o")
	out := fs.String("o", "", "save the profile image to this path")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	resp, err := a.client.GetProfile(ctx)
	if err != nil {
		return err
	}

	a.printProfile(resp.GetProfile())
	if resp.GetImageError() != "" {
		fmt.Fprintf(a.out, "image unavailable: %s\n", resp.GetImageError())
		return nil
	}
	if *out == "" {
		return nil
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	ct, err := netx.Download(ctx, resp.GetProfile().GetImageRef(), f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "image saved to %s (%s)\n", *out, ct)
	return nil
}

func (a *App) replaceImage(ctx context.Context, args []string) error {
	fs, args := newFlagSet("replace-image", args, "image")
	imagePath := fs.String("image", "", "path to the new image")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *imagePath == "" {
		return fmt.Errorf("%w: -image is required", ErrUsage)
	}

	image, err := readImage(*imagePath)
	if err != nil {
		return err
	}

	ref, err := a.client.ReplaceImage(ctx, image, a.printProgress)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "image: %s\n", ref)
	return nil
}

func readImage(path string) (*pb.Image, error) {
	img, err := filex.ReadImage(path)
	if err != nil {
		return nil, err
	}
	return &pb.Image{Name: img.Name, ContentType: img.ContentType, Data: img.Data}, nil
}

func (a *App) printProfile(p *pb.Profile) {
	f := p.GetFields()
	fmt.Fprintf(a.out, "id:         %s\n", p.GetId())
	fmt.Fprintf(a.out, "owner:      %s\n", p.GetOwnerId())
	fmt.Fprintf(a.out, "email:      %s\n", p.GetEmail())
	fmt.Fprintf(a.out, "name:       %s %s\n", f.GetFirstName(), f.GetLastName())
	fmt.Fprintf(a.out, "address:    %s\n", f.GetAddress())
	fmt.Fprintf(a.out, "profession: %s\n", f.GetProfession())
	fmt.Fprintf(a.out, "age:        %s\n", f.GetAge())
	fmt.Fprintf(a.out, "image:      %s\n", p.GetImageRef())
}
